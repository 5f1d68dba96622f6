package test

import (
	"context"
	"io"

	zkcp "github.com/taurusgroup/chaum-pedersen/pkg/zk/cp"
	"golang.org/x/sync/errgroup"
)

// Rule describes hooks that can tamper with the messages of a protocol execution.
//
// Each hook is applied to the decoded message, just before it is handed to the
// receiving party.
type Rule interface {
	ModifyCommitment(*zkcp.Commitment)
	ModifyChallenge(*zkcp.Challenge)
	ModifyResponse(*zkcp.Response)
}

// Run executes a complete proof session between prover and verifier, each in
// its own goroutine, over a fresh Network.
//
// It returns the verifier's decision, or the first error encountered by either side.
func Run(ctx context.Context, prover *zkcp.Prover, verifier *zkcp.Verifier, proverRand, verifierRand io.Reader, rule Rule) (bool, error) {
	var (
		accepted bool
		network  = NewNetwork()
	)
	errGroup, ctx := errgroup.WithContext(ctx)

	errGroup.Go(func() error {
		session := prover.NewSession()
		commitment, err := session.Commit(proverRand)
		if err != nil {
			return err
		}
		if err = network.Send(ctx, Prover, commitment); err != nil {
			return err
		}
		var challenge zkcp.Challenge
		if err = network.Receive(ctx, Prover, &challenge); err != nil {
			return err
		}
		if rule != nil {
			rule.ModifyChallenge(&challenge)
		}
		response, err := session.Respond(&challenge)
		if err != nil {
			return err
		}
		return network.Send(ctx, Prover, response)
	})

	errGroup.Go(func() error {
		var commitment zkcp.Commitment
		if err := network.Receive(ctx, Verifier, &commitment); err != nil {
			return err
		}
		if rule != nil {
			rule.ModifyCommitment(&commitment)
		}
		session, err := verifier.NewSession(&commitment)
		if err != nil {
			return err
		}
		challenge, err := session.Challenge(verifierRand)
		if err != nil {
			return err
		}
		if err = network.Send(ctx, Verifier, challenge); err != nil {
			return err
		}
		var response zkcp.Response
		if err = network.Receive(ctx, Verifier, &response); err != nil {
			return err
		}
		if rule != nil {
			rule.ModifyResponse(&response)
		}
		accepted, err = session.Verify(&response)
		return err
	})

	if err := errGroup.Wait(); err != nil {
		return false, err
	}
	return accepted, nil
}
