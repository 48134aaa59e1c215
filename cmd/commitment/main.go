// Command commitment prints the guessing-game commitment for a guess, an
// address and a blinding value.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/rs/zerolog"

	"github.com/zkcommit/poseidon/bn254"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	guess := flag.Uint("guess", 0, "guess to commit to")
	address := flag.String("address", "", "address as a hex string")
	rand := flag.String("rand", "", "blinding randomness as a hex string")
	flag.Parse()

	if *address == "" || *rand == "" {
		log.Fatal().Msg("both -address and -rand are required")
	}
	if *guess > math.MaxUint16 {
		log.Fatal().Uint64("guess", uint64(*guess)).Msg("guess out of range")
	}

	commitment, err := bn254.Commit(uint16(*guess), *address, *rand)
	if err != nil {
		log.Fatal().Err(err).Msg("computing commitment")
	}
	fmt.Println(bn254.ToHexString(commitment))
}
