package seed

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

type seedTrack struct {
	name   string
	artist string
}

// Curated real tracks so seeded reviews read like the product. Generated text
// fills everything around them.
var tracks = []seedTrack{
	{"Holocene", "Bon Iver"},
	{"Re: Stacks", "Bon Iver"},
	{"Pink + White", "Frank Ocean"},
	{"Self Control", "Frank Ocean"},
	{"Motion Sickness", "Phoebe Bridgers"},
	{"Mythological Beauty", "Big Thief"},
	{"Paul", "Big Thief"},
	{"The Less I Know The Better", "Tame Impala"},
	{"New Person, Same Old Mistakes", "Tame Impala"},
	{"Weird Fishes/Arpeggi", "Radiohead"},
	{"Nude", "Radiohead"},
	{"Ivy", "Frank Ocean"},
	{"Green Eyes", "Erykah Badu"},
	{"Cranes in the Sky", "Solange"},
	{"Shea Butter Baby", "Ari Lennox"},
	{"Redbone", "Childish Gambino"},
	{"Marigold", "Pinegrove"},
	{"Old Friends", "Pinegrove"},
	{"Two Slow Dancers", "Mitski"},
	{"Nobody", "Mitski"},
}

var reactionKinds = []string{"like", "fire", "heart"}

// randomUsername appends the loop index so a seeding run never trips the
// unique username constraint.
func randomUsername(i int) string {
	return fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i)
}

func randomAvatar() string {
	return fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID())
}

func randomBio() string {
	// about a third of profiles stay blank
	if gofakeit.Number(0, 2) == 0 {
		return ""
	}
	return gofakeit.Sentence(10)
}

func randomComment() string {
	return gofakeit.Sentence(8)
}

func randomReviewBody() string {
	if gofakeit.Number(0, 5) == 0 {
		return ""
	}
	return gofakeit.Paragraph(1, 3, 8, " ")
}
