package test

import (
	"context"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Role identifies one end of a two party Network.
type Role uint8

const (
	Prover Role = iota
	Verifier
)

func (r Role) String() string {
	if r == Prover {
		return "prover"
	}
	return "verifier"
}

func (r Role) other() Role {
	if r == Prover {
		return Verifier
	}
	return Prover
}

// Network is an in-memory connection between a prover and a verifier.
//
// Messages are CBOR-encoded on Send and decoded on Receive, so that everything
// exchanged during a test went through the wire format.
type Network struct {
	inboxes map[Role]chan []byte
}

func NewNetwork() *Network {
	return &Network{
		inboxes: map[Role]chan []byte{
			Prover:   make(chan []byte, 1),
			Verifier: make(chan []byte, 1),
		},
	}
}

// Send encodes msg and delivers it to the other party.
func (n *Network) Send(ctx context.Context, from Role, msg interface{}) error {
	data, err := cbor.Marshal(msg)
	if err != nil {
		return fmt.Errorf("network: %s: marshal: %w", from, err)
	}
	select {
	case n.inboxes[from.other()] <- data:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("network: %s: send: %w", from, ctx.Err())
	}
}

// Receive waits for the next message addressed to role, and decodes it into out.
func (n *Network) Receive(ctx context.Context, role Role, out interface{}) error {
	select {
	case data := <-n.inboxes[role]:
		if err := cbor.Unmarshal(data, out); err != nil {
			return fmt.Errorf("network: %s: unmarshal: %w", role, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("network: %s: receive: %w", role, ctx.Err())
	}
}
