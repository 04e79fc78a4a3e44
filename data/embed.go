package data

import (
	_ "embed"
)

//go:embed seed/users.json
var SeedUsers []byte

//go:embed seed/movies.json
var FallbackMovies []byte
