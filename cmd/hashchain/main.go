// Command hashchain folds a sequence of hex-encoded field elements through
// the width-3 Poseidon hash chain and prints the final chain output.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/rs/zerolog"

	"github.com/zkcommit/poseidon/bn254"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	flag.Parse()
	if flag.NArg() == 0 {
		log.Fatal().Msg("usage: hashchain <hex element> [<hex element> ...]")
	}

	inputs := make([]fr.Element, 0, flag.NArg())
	for _, arg := range flag.Args() {
		e, err := bn254.FromHexString(arg)
		if err != nil {
			log.Fatal().Err(err).Str("input", arg).Msg("parsing input")
		}
		inputs = append(inputs, e)
	}

	out, err := bn254.HashChain(inputs)
	if err != nil {
		log.Fatal().Err(err).Msg("computing hash chain")
	}
	fmt.Println(bn254.ToHexString(out))
}
