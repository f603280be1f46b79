package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusOpen, StatusInProgress, true},
		{StatusOpen, StatusClosed, true},
		{StatusOpen, StatusResolved, false},
		{StatusInProgress, StatusResolved, true},
		{StatusInProgress, StatusClosed, true},
		{StatusInProgress, StatusOpen, false},
		{StatusResolved, StatusClosed, true},
		{StatusResolved, StatusInProgress, true}, // reopen
		{StatusClosed, StatusOpen, false},
		{StatusClosed, StatusInProgress, false},
	}
	for _, c := range cases {
		got := CanTransition(c.from, c.to)
		assert.Equalf(t, c.want, got, "CanTransition(%s, %s)", c.from, c.to)
	}
}
