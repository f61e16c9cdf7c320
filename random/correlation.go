//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package random

// Correlation names a kind of pre-generated, cross-party-consistent
// randomness, grounded in correlation_generator.h's Correlation enum.
// A runtime keys its pools of CorrelationGenerator by this type so a
// protocol can ask for "the next 4096 Beaver multiplication triples"
// without knowing which generator (dummy, OT-extension-backed, or
// trusted-dealer) produced them.
type Correlation int

const (
	ROT Correlation = iota
	OLE
	BeaverMulTriple
	BeaverAndTriple
	AuthMulTriple
	AuthRandom
	ZeroSharing
	Common
	ShardedPermutation
)

func (c Correlation) String() string {
	switch c {
	case ROT:
		return "rOT"
	case OLE:
		return "OLE"
	case BeaverMulTriple:
		return "BeaverMulTriple"
	case BeaverAndTriple:
		return "BeaverAndTriple"
	case AuthMulTriple:
		return "AuthMulTriple"
	case AuthRandom:
		return "AuthRandom"
	case ZeroSharing:
		return "ZeroSharing"
	case Common:
		return "Common"
	case ShardedPermutation:
		return "ShardedPermutation"
	default:
		return "Unknown"
	}
}

// Generator identifies a producer of one Correlation by its party rank
// and kind. It declares no verification method: the only correlation
// check in this package is AssertPermutationCorrelated, for sharded
// permutations, and the other generators have none. That check always
// performs a real exchange over the communicator when called; callers
// opt in explicitly because it leaks information about the shares
// being verified and costs a round trip.
type Generator interface {
	Rank() int
	Kind() Correlation
}
