package testutil

// ExampleAlmanac is the seven-stage seed almanac used throughout the tests.
// Discrete minimum of its seeds is 35; treating the seeds as (start, length)
// pairs gives 46.
const ExampleAlmanac = `seeds: 79 14 55 13

seed-to-soil map:
50 98 2
52 50 48

soil-to-fertilizer map:
0 15 37
37 52 2
39 0 15

fertilizer-to-water map:
49 53 8
0 11 42
42 0 7
57 7 4

water-to-light map:
88 18 7
18 25 70

light-to-temperature map:
45 77 23
81 45 19
68 64 13

temperature-to-humidity map:
0 69 1
1 0 69

humidity-to-location map:
60 56 37
56 93 4
`

// ExampleSeeds are the seeds of ExampleAlmanac.
var ExampleSeeds = []uint64{79, 14, 55, 13}

// ExampleTables holds the stage tables of ExampleAlmanac as
// (dest, source, length) triples in stage order.
var ExampleTables = [][][3]uint64{
	{{50, 98, 2}, {52, 50, 48}},
	{{0, 15, 37}, {37, 52, 2}, {39, 0, 15}},
	{{49, 53, 8}, {0, 11, 42}, {42, 0, 7}, {57, 7, 4}},
	{{88, 18, 7}, {18, 25, 70}},
	{{45, 77, 23}, {81, 45, 19}, {68, 64, 13}},
	{{0, 69, 1}, {1, 0, 69}},
	{{60, 56, 37}, {56, 93, 4}},
}

// ExampleStageNames are the section names of ExampleAlmanac in order.
var ExampleStageNames = []string{
	"seed-to-soil",
	"soil-to-fertilizer",
	"fertilizer-to-water",
	"water-to-light",
	"light-to-temperature",
	"temperature-to-humidity",
	"humidity-to-location",
}
