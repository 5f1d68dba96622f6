package zkcp

import (
	"errors"
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/chaum-pedersen/pkg/group"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/arith"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/sample"
)

var (
	// ErrSessionState is returned when a session method is called out of order,
	// or more than once.
	ErrSessionState = errors.New("zkcp: invalid session state")
	// ErrChallengeRange is returned for a challenge outside [0, q).
	ErrChallengeRange = errors.New("zkcp: challenge is not in [0, q)")
)

// State is the position of a session in the protocol.
type State uint8

const (
	StateInit State = iota
	StateCommitted
	StateChallenged
	StateResponded
	StateVerified
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateCommitted:
		return "committed"
	case StateChallenged:
		return "challenged"
	case StateResponded:
		return "responded"
	case StateVerified:
		return "verified"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Prover holds the secret x and can run any number of proof sessions.
type Prover struct {
	protocol *Protocol
	secret   *saferith.Nat
	public   Public
}

// NewProver returns a Prover for the secret x ∈ [0, q).
func NewProver(group *group.Parameters, x *saferith.Nat) (*Prover, error) {
	if x == nil || !group.IsExponent(x) {
		return nil, fmt.Errorf("zkcp: secret is not in [0, q): %w", arith.ErrInvalidParameters)
	}
	return &Prover{
		protocol: New(group),
		secret:   new(saferith.Nat).SetNat(x),
		public:   NewPublic(group, x),
	}, nil
}

// Public returns the public keys (y₁, y₂) matching the prover's secret.
func (p *Prover) Public() Public {
	return p.public
}

// NewSession returns a session in StateInit, which has not committed yet.
func (p *Prover) NewSession() *ProverSession {
	return &ProverSession{
		prover: p,
		state:  StateInit,
	}
}

// Commit starts a new session and commits to it in one step.
func (p *Prover) Commit(rand io.Reader) (*ProverSession, *Commitment) {
	s := p.NewSession()
	// a fresh session is always in StateInit
	commitment, _ := s.Commit(rand)
	return s, commitment
}

// ProverSession is a single proof attempt. It must not be shared between goroutines.
//
// The nonce is erased as soon as a response is produced: answering two
// different challenges with the same nonce would reveal x.
type ProverSession struct {
	prover *Prover
	nonce  *saferith.Nat
	state  State
}

// State returns the current state of the session.
func (s *ProverSession) State() State {
	return s.state
}

// Commit samples a fresh nonce r ∈ [0, q), and returns the commitment (gʳ, hʳ)
// to send to the verifier.
func (s *ProverSession) Commit(rand io.Reader) (*Commitment, error) {
	if s.state != StateInit {
		return nil, fmt.Errorf("zkcp: commit in state %s: %w", s.state, ErrSessionState)
	}
	group := s.prover.protocol.Group()
	r := sample.ModN(rand, group.Q().Modulus)
	s.nonce = r
	s.state = StateCommitted
	return &Commitment{
		T1: group.P().Exp(group.G(), r),
		T2: group.P().Exp(group.H(), r),
	}, nil
}

// Respond answers the verifier's challenge.
//
// It can only be called once per session; later calls return ErrSessionState.
func (s *ProverSession) Respond(challenge *Challenge) (*Response, error) {
	if s.state != StateCommitted {
		return nil, fmt.Errorf("zkcp: respond in state %s: %w", s.state, ErrSessionState)
	}
	group := s.prover.protocol.Group()
	if challenge == nil || challenge.C == nil || !group.IsExponent(challenge.C) {
		return nil, ErrChallengeRange
	}
	resp := &Response{
		S: s.prover.protocol.Response(s.nonce, challenge.C, s.prover.secret),
	}
	s.nonce.SetUint64(0)
	s.nonce = nil
	s.state = StateResponded
	return resp, nil
}

// Verifier checks proofs against a fixed set of public keys.
//
// A Verifier is read-only and can be shared, while each VerifierSession
// belongs to a single proof attempt.
type Verifier struct {
	protocol *Protocol
	public   Public
}

// NewVerifier returns a Verifier for the given public keys, which must be
// elements of the subgroup of order q.
func NewVerifier(group *group.Parameters, public Public) (*Verifier, error) {
	if err := public.Validate(group); err != nil {
		return nil, err
	}
	return &Verifier{
		protocol: New(group),
		public:   public,
	}, nil
}

// NewSession starts checking a proof whose commitment has been received.
func (v *Verifier) NewSession(commitment *Commitment) (*VerifierSession, error) {
	if commitment == nil || commitment.T1 == nil || commitment.T2 == nil {
		return nil, errors.New("zkcp: missing commitment")
	}
	return &VerifierSession{
		verifier:   v,
		commitment: *commitment,
		state:      StateCommitted,
	}, nil
}

// VerifierSession is the verifier's side of a single proof attempt.
type VerifierSession struct {
	verifier   *Verifier
	commitment Commitment
	challenge  *saferith.Nat
	response   *saferith.Nat
	state      State
}

// State returns the current state of the session.
func (s *VerifierSession) State() State {
	return s.state
}

// Challenge samples a challenge c ∈ [0, q) and returns it to be sent to the prover.
func (s *VerifierSession) Challenge(rand io.Reader) (*Challenge, error) {
	if s.state != StateCommitted {
		return nil, fmt.Errorf("zkcp: challenge in state %s: %w", s.state, ErrSessionState)
	}
	c := sample.ModN(rand, s.verifier.protocol.Group().Q().Modulus)
	s.challenge = c
	s.state = StateChallenged
	return &Challenge{C: c}, nil
}

// SetChallenge uses an externally chosen challenge, which must lie in [0, q).
func (s *VerifierSession) SetChallenge(c *saferith.Nat) error {
	if s.state != StateCommitted {
		return fmt.Errorf("zkcp: set challenge in state %s: %w", s.state, ErrSessionState)
	}
	if c == nil || !s.verifier.protocol.Group().IsExponent(c) {
		return ErrChallengeRange
	}
	s.challenge = new(saferith.Nat).SetNat(c)
	s.state = StateChallenged
	return nil
}

// Verify checks the prover's response and ends the session.
//
// A proof that does not verify returns false and a nil error; errors are only
// returned when the session is used out of order.
func (s *VerifierSession) Verify(resp *Response) (bool, error) {
	if s.state != StateChallenged {
		return false, fmt.Errorf("zkcp: verify in state %s: %w", s.state, ErrSessionState)
	}
	s.state = StateResponded
	if resp == nil || resp.S == nil {
		s.state = StateVerified
		return false, nil
	}
	s.response = new(saferith.Nat).SetNat(resp.S)
	ok := s.Transcript().Verify(s.verifier.protocol)
	s.state = StateVerified
	return ok, nil
}

// Transcript returns the messages exchanged so far. Fields of messages that
// have not been received yet are nil.
func (s *VerifierSession) Transcript() *Transcript {
	return &Transcript{
		Commitment: s.commitment,
		Challenge:  Challenge{C: s.challenge},
		Response:   Response{S: s.response},
		Public:     s.verifier.public,
	}
}
