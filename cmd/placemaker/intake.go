package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"placemaker/internal/hmis/validation"
	dErrors "placemaker/pkg/domain-errors"
)

const maxRecordBytes = 1 << 20

type summary struct {
	accepted int
	rejected int
}

// result is written to stdout for every input line. Violation values are
// left out so SSNs do not leak into the output.
type result struct {
	Line       int             `json:"line"`
	PersonalID string          `json:"personal_id,omitempty"`
	Error      string          `json:"error,omitempty"`
	Violations []violationLine `json:"violations,omitempty"`
}

type violationLine struct {
	Path    string          `json:"path"`
	Kind    validation.Kind `json:"kind"`
	Message string          `json:"message"`
}

// intake registers one person per non-blank input line. Decoding and
// validation failures reject the line and move on; only read and internal
// store failures abort.
func (a *app) intake(ctx context.Context, in io.Reader, out io.Writer) (summary, error) {
	var sum summary
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordBytes)
	enc := json.NewEncoder(out)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		res := result{Line: line}
		record, err := decodeRecord(raw)
		if err != nil {
			res.Error = err.Error()
			a.log.WarnContext(ctx, "record rejected", "line", line, "error", err)
		} else {
			p, regErr := a.service.RegisterPerson(ctx, record)
			switch {
			case regErr == nil:
				res.PersonalID = p.PersonalID.String()
			case dErrors.HasCode(regErr, dErrors.CodeInternal), dErrors.HasCode(regErr, dErrors.CodeUnavailable):
				return sum, fmt.Errorf("line %d: %w", line, regErr)
			default:
				res.Error = regErr.Error()
				if vs, ok := validation.AsViolations(regErr); ok {
					res.Violations = violationLines(vs)
					res.Error = ""
				}
				a.log.WarnContext(ctx, "record rejected",
					"line", line,
					"violations", len(res.Violations),
				)
			}
		}

		if res.PersonalID != "" {
			sum.accepted++
		} else {
			sum.rejected++
		}
		if err := enc.Encode(res); err != nil {
			return sum, fmt.Errorf("write result: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return sum, fmt.Errorf("read input: %w", err)
	}
	return sum, nil
}

// decodeRecord parses one JSON object, keeping numbers as json.Number so
// integral values survive unchanged.
func decodeRecord(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var record map[string]any
	if err := dec.Decode(&record); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("decode record: expected a JSON object")
	}
	return record, nil
}

func violationLines(vs validation.Violations) []violationLine {
	out := make([]violationLine, len(vs))
	for i, v := range vs {
		out[i] = violationLine{Path: v.Path, Kind: v.Kind, Message: v.Message}
	}
	return out
}
