package almanac

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/remap"
)

const (
	seedsPrefix   = "seeds:"
	sectionSuffix = " map:"
	chainSep      = "-to-"

	// maxLineSize bounds a single line, which for the seeds line means
	// roughly three million seeds.
	maxLineSize = 64 << 20
)

// SyntaxError reports malformed almanac text.
type SyntaxError struct {
	Line int // 1-based
	Msg  string
	Err  error
}

func (e *SyntaxError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("almanac: line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("almanac: line %d: %s", e.Line, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Parse reads the plain-text almanac format.
//
// The seeds line is optional but must precede the first section. Blank lines
// are ignored. Stage categories are taken from "<source>-to-<destination>"
// section names; other names leave them empty. Lines longer than 64 MiB are
// rejected.
func Parse(r io.Reader) (*Almanac, error) {
	var (
		a       = &Almanac{}
		sc      = bufio.NewScanner(r)
		line    int
		current *StageDef
		seeded  bool
	)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineSize)

	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())

		switch {
		case text == "":
			continue

		case strings.HasPrefix(text, seedsPrefix):
			if seeded {
				return nil, &SyntaxError{Line: line, Msg: "duplicate seeds line"}
			}
			if current != nil {
				return nil, &SyntaxError{Line: line, Msg: "seeds must precede the first map"}
			}
			seeds, err := parseNumbers(strings.Fields(text[len(seedsPrefix):]))
			if err != nil {
				return nil, &SyntaxError{Line: line, Msg: "bad seed", Err: err}
			}
			a.Seeds = seeds
			seeded = true

		case strings.HasSuffix(text, sectionSuffix) || text == strings.TrimSpace(sectionSuffix):
			name := strings.TrimSpace(strings.TrimSuffix(text, strings.TrimSpace(sectionSuffix)))
			if name == "" {
				return nil, &SyntaxError{Line: line, Msg: "map without a name"}
			}
			a.Stages = append(a.Stages, newStageDef(name))
			current = &a.Stages[len(a.Stages)-1]

		default:
			if current == nil {
				return nil, &SyntaxError{Line: line, Msg: fmt.Sprintf("row %q outside a map", text)}
			}
			fields := strings.Fields(text)
			if len(fields) != 3 {
				return nil, &SyntaxError{Line: line, Msg: fmt.Sprintf("want 3 columns, got %d", len(fields))}
			}
			vals, err := parseNumbers(fields)
			if err != nil {
				return nil, &SyntaxError{Line: line, Msg: "bad row", Err: err}
			}
			current.Segments = append(current.Segments, remap.NewSegment(vals[0], vals[1], vals[2]))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return a, nil
}

func newStageDef(name string) StageDef {
	def := StageDef{Name: name}
	if src, dst, ok := strings.Cut(name, chainSep); ok && src != "" && dst != "" && !strings.Contains(dst, chainSep) {
		def.Source, def.Destination = src, dst
	}
	return def
}

func parseNumbers(fields []string) ([]uint64, error) {
	out := make([]uint64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// writeText renders the plain-text almanac format.
func writeText(w io.Writer, a *Almanac) error {
	bw := bufio.NewWriter(w)

	if len(a.Seeds) > 0 {
		bw.WriteString(seedsPrefix)
		for _, s := range a.Seeds {
			bw.WriteByte(' ')
			bw.WriteString(strconv.FormatUint(s, 10))
		}
		bw.WriteString("\n")
	}

	for i, st := range a.Stages {
		if i > 0 || len(a.Seeds) > 0 {
			bw.WriteString("\n")
		}
		fmt.Fprintf(bw, "%s%s\n", st.Name, sectionSuffix)
		for _, seg := range st.Segments {
			fmt.Fprintf(bw, "%d %d %d\n", seg.DestStart, seg.SourceStart, seg.Length)
		}
	}

	return bw.Flush()
}
