package entity

import (
	"errors"
	"fmt"
)

// Owner is the claim on a tile at any level of the board.
type Owner uint8

const (
	OwnerNeither Owner = iota
	OwnerX
	OwnerO
	// OwnerBoth marks a tile filled without a line, claimed by both players.
	OwnerBoth
)

var ErrUnknownOwner = errors.New("unknown owner token")

var ownerTokens = [...]string{
	OwnerNeither: "NEITHER",
	OwnerX:       "X",
	OwnerO:       "O",
	OwnerBoth:    "BOTH",
}

func (that Owner) String() string {
	if int(that) < len(ownerTokens) {
		return ownerTokens[that]
	}

	return fmt.Sprintf("Owner(%d)", uint8(that))
}

// ParseOwner - converts a serialized token back into an Owner.
func ParseOwner(token string) (Owner, error) {
	for owner, known := range ownerTokens {
		if known == token {
			return Owner(owner), nil
		}
	}

	return OwnerNeither, fmt.Errorf("%w: %q", ErrUnknownOwner, token)
}

// Opponent - returns the other player, only meaningful for OwnerX and OwnerO.
func (that Owner) Opponent() Owner {
	if that == OwnerX {
		return OwnerO
	}
	return OwnerX
}

func (that Owner) IsPlayer() bool {
	return that == OwnerX || that == OwnerO
}

func (that Owner) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Owner) UnmarshalText(text []byte) error {
	owner, err := ParseOwner(string(text))
	if err != nil {
		return err
	}

	*that = owner
	return nil
}
