package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCanonicalPair_Is_Order_Independent(t *testing.T) {
	req := require.New(t)
	a := uuid.NewString()
	b := uuid.NewString()

	// When the pair is canonicalized in both orders
	lo1, hi1 := CanonicalPair(a, b)
	lo2, hi2 := CanonicalPair(b, a)

	// Then both orders map to one representation
	req.Equal(lo1, lo2)
	req.Equal(hi1, hi2)
	req.True(lo1 <= hi1)
	req.ElementsMatch([]string{a, b}, []string{lo1, hi1})
}

func TestCanonicalPair_Already_Ordered(t *testing.T) {
	req := require.New(t)

	lo, hi := CanonicalPair("alice", "bob")

	req.Equal("alice", lo)
	req.Equal("bob", hi)
}

func TestPairPermutations_Covers_Both_Orders(t *testing.T) {
	req := require.New(t)

	perms := PairPermutations("alice", "bob")

	req.Equal([2]string{"alice", "bob"}, perms[0])
	req.Equal([2]string{"bob", "alice"}, perms[1])
}

func TestIsIdentifier(t *testing.T) {
	req := require.New(t)

	req.True(IsIdentifier(uuid.NewString()))
	req.True(IsIdentifier("user_123"))
	req.True(IsIdentifier("ABC-def-42"))

	req.False(IsIdentifier(""))
	req.False(IsIdentifier("white space"))
	req.False(IsIdentifier("éléphant"))
	req.False(IsIdentifier("semi;colon"))
}
