package main

import (
	"flag"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"

	"github.com/carelink/care-coordination/internal/seed"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	var (
		out       = flag.String("out", "seed.json", "output path for the generated dataset")
		patients  = flag.Int("patients", 10, "number of patients to generate")
		providers = flag.Int("providers", 6, "number of providers to generate")
		requests  = flag.Int("requests", 5, "number of pending appointment requests")
		demo      = flag.Bool("demo", false, "write the fixed demo dataset instead of a random one")
	)
	flag.Parse()

	logger.Info().Msg("seed starting")

	ds := seed.Demo()
	if !*demo {
		gofakeit.Seed(time.Now().UnixNano())
		ds = seed.Generate(seed.GenerateOptions{
			Patients:  *patients,
			Providers: *providers,
			Requests:  *requests,
		})
	}

	if err := seed.Validate(ds); err != nil {
		logger.Fatal().Err(err).Msg("generated dataset is invalid")
	}

	if err := seed.WriteFile(*out, ds); err != nil {
		logger.Fatal().Err(err).Msg("write seed file")
	}

	logger.Info().
		Str("out", *out).
		Int("patients", len(ds.Patients)).
		Int("providers", len(ds.Providers)).
		Int("requests", len(ds.Requests)).
		Int("appointments", len(ds.Appointments)).
		Msg("seed complete")
}
