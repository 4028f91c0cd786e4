// Package gcode writes knife/plotter programs for diecuts and reads them
// back for verification.
package gcode

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MoveType represents the type of toolpath movement.
type MoveType int

const (
	MoveRapid   MoveType = iota // G0: travel with the knife up
	MoveFeed                    // G1 in the XY plane: cutting
	MovePlunge                  // Z going down without XY travel
	MoveRetract                 // Z going up without XY travel, or any rising G0
)

func (m MoveType) String() string {
	switch m {
	case MoveFeed:
		return "feed"
	case MovePlunge:
		return "plunge"
	case MoveRetract:
		return "retract"
	default:
		return "rapid"
	}
}

// Move represents a single parsed movement.
type Move struct {
	Type     MoveType
	FromX    float64
	FromY    float64
	FromZ    float64
	ToX      float64
	ToY      float64
	ToZ      float64
	FeedRate float64
}

// Length returns the XY distance travelled.
func (m Move) Length() float64 {
	return math.Hypot(m.ToX-m.FromX, m.ToY-m.FromY)
}

var wordRe = regexp.MustCompile(`([XYZF])(-?\d+\.?\d*)`)

// ParseGCode parses a program into moves, tracking absolute position and
// the modal feed rate. Lines other than G0/G1 are ignored.
func ParseGCode(code string) []Move {
	var moves []Move

	// Current machine state
	curX, curY, curZ := 0.0, 0.0, 0.0
	curFeed := 0.0

	for _, line := range strings.Split(code, "\n") {
		line = strings.ToUpper(stripComment(line))
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		var rapid bool
		switch fields[0] {
		case "G0", "G00":
			rapid = true
		case "G1", "G01":
		default:
			continue
		}

		newX, newY, newZ, newFeed := curX, curY, curZ, curFeed
		for _, m := range wordRe.FindAllStringSubmatch(line, -1) {
			val, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			switch m[1] {
			case "X":
				newX = val
			case "Y":
				newY = val
			case "Z":
				newZ = val
			case "F":
				newFeed = val
			}
		}

		moves = append(moves, Move{
			Type:     classifyMove(rapid, curZ, newZ, curX, curY, newX, newY),
			FromX:    curX,
			FromY:    curY,
			FromZ:    curZ,
			ToX:      newX,
			ToY:      newY,
			ToZ:      newZ,
			FeedRate: newFeed,
		})

		curX, curY, curZ, curFeed = newX, newY, newZ, newFeed
	}

	return moves
}

// stripComment removes semicolon and parenthetical comments.
func stripComment(line string) string {
	if idx := strings.Index(line, ";"); idx >= 0 {
		line = line[:idx]
	}
	for {
		start := strings.Index(line, "(")
		if start < 0 {
			break
		}
		end := strings.Index(line[start:], ")")
		if end < 0 {
			line = line[:start]
			break
		}
		line = line[:start] + line[start+end+1:]
	}
	return strings.TrimSpace(line)
}

// classifyMove determines the MoveType based on movement characteristics.
func classifyMove(rapid bool, fromZ, toZ, fromX, fromY, toX, toY float64) MoveType {
	zDelta := toZ - fromZ
	hasXY := fromX != toX || fromY != toY

	switch {
	case rapid:
		if zDelta > 0 {
			return MoveRetract
		}
		return MoveRapid
	case zDelta < -0.001 && !hasXY:
		return MovePlunge
	case zDelta > 0.001 && !hasXY:
		return MoveRetract
	default:
		return MoveFeed
	}
}

// Summary aggregates a parsed program.
type Summary struct {
	Counts      map[MoveType]int
	CutLength   float64 // mm
	RapidTravel float64 // mm
	MinX, MinY  float64
	MaxX, MaxY  float64
}

// Summarize counts moves by type and measures cutting and travel distance.
// The extents cover feed moves only.
func Summarize(moves []Move) Summary {
	s := Summary{
		Counts: map[MoveType]int{},
		MinX:   math.Inf(1),
		MinY:   math.Inf(1),
		MaxX:   math.Inf(-1),
		MaxY:   math.Inf(-1),
	}
	for _, m := range moves {
		s.Counts[m.Type]++
		switch m.Type {
		case MoveFeed:
			s.CutLength += m.Length()
			s.MinX = math.Min(s.MinX, math.Min(m.FromX, m.ToX))
			s.MinY = math.Min(s.MinY, math.Min(m.FromY, m.ToY))
			s.MaxX = math.Max(s.MaxX, math.Max(m.FromX, m.ToX))
			s.MaxY = math.Max(s.MaxY, math.Max(m.FromY, m.ToY))
		case MoveRapid:
			s.RapidTravel += m.Length()
		}
	}
	return s
}
