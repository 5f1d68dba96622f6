package params

const (
	SecParam = 256
	SecBytes = SecParam / 8

	// StatParam is the number of extra bits drawn before a modular reduction
	// so that the statistical distance from uniform is at most 2⁻¹²⁸.
	StatParam = 128
	StatBytes = StatParam / 8

	// MaxIterations bounds the number of failed reads from a randomness source,
	// and the number of candidates tried when deriving a generator.
	MaxIterations = 255

	// PrimalityIterations is the number of Miller-Rabin rounds used when
	// validating group parameters. 20 is the same number that Go uses internally.
	PrimalityIterations = 20

	// Argon2id cost parameters for password-derived secrets,
	// following the recommendation of RFC 9106 for memory constrained settings.
	Argon2Time    = 3
	Argon2Memory  = 64 * 1024 // KiB
	Argon2Threads = 4
	SaltBytes     = 16
)
