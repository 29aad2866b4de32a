package srt

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Block is one subtitle entry. Sequence position is significant; Index is
// advisory and may be renumbered on output. TimeRange is preserved verbatim.
type Block struct {
	Index     int
	TimeRange string
	Text      string
}

// Parse converts raw SRT content into an ordered block sequence. Blocks with
// fewer than three non-empty lines are skipped. A byte-order marker at the
// start of the input is stripped. A non-integer index line is a hard failure.
func Parse(raw string) ([]Block, error) {
	raw = strings.TrimPrefix(raw, "\uFEFF")
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	var blocks []Block
	for _, chunk := range strings.Split(normalized, "\n\n") {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		lines := make([]string, 0, 4)
		for _, line := range strings.Split(chunk, "\n") {
			if strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) < 3 {
			continue
		}

		indexLine := lines[0]
		index, err := strconv.Atoi(strings.TrimSpace(indexLine))
		if err != nil {
			return nil, fmt.Errorf("parse block index %q: %w", indexLine, err)
		}

		blocks = append(blocks, Block{
			Index:     index,
			TimeRange: lines[1],
			Text:      strings.Join(trimAll(lines[2:]), " "),
		})
	}
	return blocks, nil
}

// ParseFile reads and parses an SRT file.
func ParseFile(path string) ([]Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	blocks, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse srt %s: %w", path, err)
	}
	return blocks, nil
}

// Render serializes blocks back to SRT text. Indexes are renumbered
// sequentially from 1; time ranges are written unchanged. Each block is
// followed by a blank line.
func Render(blocks []Block) string {
	var sb strings.Builder
	for i, block := range blocks {
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteByte('\n')
		sb.WriteString(block.TimeRange)
		sb.WriteByte('\n')
		sb.WriteString(block.Text)
		sb.WriteByte('\n')
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteFile serializes blocks to path.
func WriteFile(path string, blocks []Block) error {
	if err := os.WriteFile(path, []byte(Render(blocks)), 0o644); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}

func trimAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimSpace(line)
	}
	return out
}
