// Package credentials generates display names for anonymous players.
package credentials

import (
	"crypto/rand"
	"math/big"
	"strings"
)

var adjectives = []string{
	"happy", "sunny", "brave", "bright", "cool", "swift", "clever", "jolly",
	"mighty", "super", "wild", "funny", "lucky", "magic", "bouncy", "retro",
	"cheerful", "daring", "eager", "flying", "gentle", "hyper", "jazzy", "pixel",
	"lively", "merry", "noble", "perky", "quick", "royal", "snappy", "turbo",
	"zippy", "bold", "cosmic", "dynamic", "epic", "groovy", "arcade", "neon",
}

var nouns = []string{
	"dragon", "tiger", "eagle", "dolphin", "panda", "otter", "wolf", "bear",
	"fox", "hawk", "shark", "phoenix", "plumber", "rocket", "ninja", "wizard",
	"knight", "pirate", "robot", "astronaut", "hero", "champion", "explorer", "ranger",
	"hedgehog", "captain", "gamer", "comet", "speedrunner", "joystick", "cartridge", "sprite",
	"boss", "storm", "shadow", "spirit", "ghost", "monster", "alien", "racer",
}

// GenerateNickname returns a random two-word display name such as "Brave Otter"
func GenerateNickname() (string, error) {
	adjective, err := randomElement(adjectives)
	if err != nil {
		return "", err
	}

	noun, err := randomElement(nouns)
	if err != nil {
		return "", err
	}

	return titleCase(adjective) + " " + titleCase(noun), nil
}

func titleCase(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

// randomElement picks a random element from a string slice
func randomElement(slice []string) (string, error) {
	if len(slice) == 0 {
		return "", nil
	}

	num, err := rand.Int(rand.Reader, big.NewInt(int64(len(slice))))
	if err != nil {
		return "", err
	}

	return slice[num.Int64()], nil
}
