package main

import (
	"crypto/rand"
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/chaum-pedersen/pkg/group"
	zkcp "github.com/taurusgroup/chaum-pedersen/pkg/zk/cp"
)

// p = 2q + 1 with q prime; far too small for real use.
const (
	exampleP = 2039
	exampleQ = 1019
)

func main() {
	p := new(saferith.Nat).SetUint64(exampleP)
	q := new(saferith.Nat).SetUint64(exampleQ)
	g, err := group.DeriveGenerator(p, q, []byte("example g"))
	if err != nil {
		panic(err)
	}
	h, err := group.DeriveGenerator(p, q, []byte("example h"))
	if err != nil {
		panic(err)
	}
	pp, err := group.New(p, q, g, h)
	if err != nil {
		panic(err)
	}
	fmt.Println(pp)

	// registration: the prover derives x from a password, and publishes (y₁, y₂)
	salt, err := zkcp.NewSalt(rand.Reader)
	if err != nil {
		panic(err)
	}
	prover, err := zkcp.NewProver(pp, zkcp.SecretFromPassword(pp, []byte("hunter2"), salt))
	if err != nil {
		panic(err)
	}
	verifier, err := zkcp.NewVerifier(pp, prover.Public())
	if err != nil {
		panic(err)
	}

	// authentication
	proverSession, commitment := prover.Commit(rand.Reader)
	verifierSession, err := verifier.NewSession(commitment)
	if err != nil {
		panic(err)
	}
	challenge, err := verifierSession.Challenge(rand.Reader)
	if err != nil {
		panic(err)
	}
	response, err := proverSession.Respond(challenge)
	if err != nil {
		panic(err)
	}
	ok, err := verifierSession.Verify(response)
	if err != nil {
		panic(err)
	}

	transcript, err := cbor.Marshal(verifierSession.Transcript())
	if err != nil {
		panic(err)
	}
	fmt.Printf("accepted: %v (transcript: %d bytes)\n", ok, len(transcript))
}
