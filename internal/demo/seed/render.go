package seed

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"
	"time"
)

// The renderer draws the boxscore the vision agent reads. Everything is
// painted from the same PlayerLine values that go into the database, so the
// two answer paths always see the same numbers.

const (
	glyphWidth  = 5
	glyphHeight = 7
	pxScale     = 2
	cellWidth   = (glyphWidth + 1) * pxScale
	cellHeight  = (glyphHeight + 1) * pxScale
	marginX     = 10 * pxScale
	marginY     = 8 * pxScale
)

var (
	bgColor     = color.RGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff}
	rowColor    = color.RGBA{R: 0x16, G: 0x20, B: 0x38, A: 0xff}
	textColor   = color.RGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}
	mutedColor  = color.RGBA{R: 0x94, G: 0xa3, B: 0xb8, A: 0xff}
	dividerLine = color.RGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff}
)

// glyphs is a 5x7 bitmap font, one row per byte, bit 4 leftmost. It covers
// what a boxscore needs: digits, capitals, and a little punctuation.
var glyphs = map[rune][glyphHeight]byte{
	'A': {0x0E, 0x11, 0x11, 0x1F, 0x11, 0x11, 0x11},
	'B': {0x1E, 0x11, 0x11, 0x1E, 0x11, 0x11, 0x1E},
	'C': {0x0E, 0x11, 0x10, 0x10, 0x10, 0x11, 0x0E},
	'D': {0x1E, 0x11, 0x11, 0x11, 0x11, 0x11, 0x1E},
	'E': {0x1F, 0x10, 0x10, 0x1E, 0x10, 0x10, 0x1F},
	'F': {0x1F, 0x10, 0x10, 0x1E, 0x10, 0x10, 0x10},
	'G': {0x0E, 0x11, 0x10, 0x17, 0x11, 0x11, 0x0F},
	'H': {0x11, 0x11, 0x11, 0x1F, 0x11, 0x11, 0x11},
	'I': {0x0E, 0x04, 0x04, 0x04, 0x04, 0x04, 0x0E},
	'J': {0x07, 0x02, 0x02, 0x02, 0x02, 0x12, 0x0C},
	'K': {0x11, 0x12, 0x14, 0x18, 0x14, 0x12, 0x11},
	'L': {0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x1F},
	'M': {0x11, 0x1B, 0x15, 0x15, 0x11, 0x11, 0x11},
	'N': {0x11, 0x19, 0x15, 0x13, 0x11, 0x11, 0x11},
	'O': {0x0E, 0x11, 0x11, 0x11, 0x11, 0x11, 0x0E},
	'P': {0x1E, 0x11, 0x11, 0x1E, 0x10, 0x10, 0x10},
	'Q': {0x0E, 0x11, 0x11, 0x11, 0x15, 0x12, 0x0D},
	'R': {0x1E, 0x11, 0x11, 0x1E, 0x14, 0x12, 0x11},
	'S': {0x0F, 0x10, 0x10, 0x0E, 0x01, 0x01, 0x1E},
	'T': {0x1F, 0x04, 0x04, 0x04, 0x04, 0x04, 0x04},
	'U': {0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x0E},
	'V': {0x11, 0x11, 0x11, 0x11, 0x11, 0x0A, 0x04},
	'W': {0x11, 0x11, 0x11, 0x15, 0x15, 0x1B, 0x11},
	'X': {0x11, 0x11, 0x0A, 0x04, 0x0A, 0x11, 0x11},
	'Y': {0x11, 0x11, 0x0A, 0x04, 0x04, 0x04, 0x04},
	'Z': {0x1F, 0x01, 0x02, 0x04, 0x08, 0x10, 0x1F},
	'0': {0x0E, 0x11, 0x13, 0x15, 0x19, 0x11, 0x0E},
	'1': {0x04, 0x0C, 0x04, 0x04, 0x04, 0x04, 0x0E},
	'2': {0x0E, 0x11, 0x01, 0x06, 0x08, 0x10, 0x1F},
	'3': {0x1F, 0x01, 0x02, 0x06, 0x01, 0x11, 0x0E},
	'4': {0x02, 0x06, 0x0A, 0x12, 0x1F, 0x02, 0x02},
	'5': {0x1F, 0x10, 0x1E, 0x01, 0x01, 0x11, 0x0E},
	'6': {0x06, 0x08, 0x10, 0x1E, 0x11, 0x11, 0x0E},
	'7': {0x1F, 0x01, 0x02, 0x04, 0x08, 0x08, 0x08},
	'8': {0x0E, 0x11, 0x11, 0x0E, 0x11, 0x11, 0x0E},
	'9': {0x0E, 0x11, 0x11, 0x0F, 0x01, 0x02, 0x0C},
	'.': {0x00, 0x00, 0x00, 0x00, 0x00, 0x0C, 0x0C},
	'-': {0x00, 0x00, 0x00, 0x0E, 0x00, 0x00, 0x00},
	':': {0x00, 0x0C, 0x0C, 0x00, 0x0C, 0x0C, 0x00},
	'/': {0x01, 0x02, 0x02, 0x04, 0x08, 0x08, 0x10},
	' ': {},
}

var statColumns = []struct {
	label string
	width int
	value func(PlayerLine) int
}{
	{"MIN", 4, func(p PlayerLine) int { return p.Minutes }},
	{"PTS", 4, func(p PlayerLine) int { return p.Points }},
	{"REB", 4, func(p PlayerLine) int { return p.Rebounds }},
	{"AST", 4, func(p PlayerLine) int { return p.Assists }},
	{"STL", 4, func(p PlayerLine) int { return p.Steals }},
	{"BLK", 4, func(p PlayerLine) int { return p.Blocks }},
	{"3PM", 4, func(p PlayerLine) int { return p.FG3Made }},
}

const nameWidth = 16

// WriteBoxscorePNG renders a fixture's boxscore and writes it as PNG.
func WriteBoxscorePNG(w io.Writer, fixture GameFixture) error {
	img := renderBoxscore(fixture)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode boxscore png: %w", err)
	}
	return nil
}

func renderBoxscore(fixture GameFixture) *image.RGBA {
	away := teamPlayers(fixture.Players, fixture.Game.AwayTeamAbbrev)
	home := teamPlayers(fixture.Players, fixture.Game.HomeTeamAbbrev)

	lineChars := nameWidth
	for _, col := range statColumns {
		lineChars += col.width
	}
	width := 2*marginX + lineChars*cellWidth

	// Header scoreboard is 4 rows; each team section is a title row, a
	// column row, and one row per player.
	rows := 4 + (2 + len(away)) + (2 + len(home)) + 1
	height := 2*marginY + rows*cellHeight

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bgColor), image.Point{}, draw.Src)

	awayAccent := parseHexColor(fixture.AwayColor, textColor)
	homeAccent := parseHexColor(fixture.HomeColor, textColor)

	y := marginY
	scoreboard := [][2]string{
		{fixture.Game.AwayTeamAbbrev, fmt.Sprintf("%d", fixture.Game.AwayTeamScore)},
		{fixture.Game.HomeTeamAbbrev, fmt.Sprintf("%d", fixture.Game.HomeTeamScore)},
	}
	for i, line := range scoreboard {
		accent := awayAccent
		if i == 1 {
			accent = homeAccent
		}
		drawText(img, marginX, y, accent, pad(line[0], 10))
		drawText(img, marginX+10*cellWidth, y, textColor, line[1])
		y += cellHeight
	}
	statusLine := "FINAL - " + strings.ToUpper(formatGameDate(fixture.Game.GameDate))
	drawText(img, marginX, y, mutedColor, statusLine)
	y += 2 * cellHeight

	y = drawTeamSection(img, y, fixture.Game.AwayTeamAbbrev, awayAccent, away)
	y += cellHeight
	drawTeamSection(img, y, fixture.Game.HomeTeamAbbrev, homeAccent, home)

	return img
}

func drawTeamSection(img *image.RGBA, y int, abbrev string, accent color.RGBA, players []PlayerLine) int {
	drawText(img, marginX, y, accent, abbrev)
	y += cellHeight

	header := pad("PLAYER", nameWidth)
	for _, col := range statColumns {
		header += padLeft(col.label, col.width)
	}
	drawText(img, marginX, y, mutedColor, header)
	y += cellHeight

	for i, p := range players {
		if i%2 == 1 {
			stripe := image.Rect(marginX/2, y-pxScale, img.Bounds().Dx()-marginX/2, y+glyphHeight*pxScale+pxScale)
			draw.Draw(img, stripe, image.NewUniform(rowColor), image.Point{}, draw.Src)
		}
		line := pad(p.Name, nameWidth)
		for _, col := range statColumns {
			line += padLeft(fmt.Sprintf("%d", col.value(p)), col.width)
		}
		drawText(img, marginX, y, textColor, line)
		y += cellHeight
	}

	divider := image.Rect(marginX/2, y, img.Bounds().Dx()-marginX/2, y+pxScale)
	draw.Draw(img, divider, image.NewUniform(dividerLine), image.Point{}, draw.Src)
	return y
}

func drawText(img *image.RGBA, x, y int, col color.RGBA, text string) {
	for _, r := range strings.ToUpper(text) {
		glyph, ok := glyphs[r]
		if !ok {
			glyph = glyphs[' ']
		}
		for row := 0; row < glyphHeight; row++ {
			bits := glyph[row]
			for bit := 0; bit < glyphWidth; bit++ {
				if bits&(1<<(glyphWidth-1-bit)) == 0 {
					continue
				}
				px := x + bit*pxScale
				py := y + row*pxScale
				for dy := 0; dy < pxScale; dy++ {
					for dx := 0; dx < pxScale; dx++ {
						img.SetRGBA(px+dx, py+dy, col)
					}
				}
			}
		}
		x += cellWidth
	}
}

func teamPlayers(players []PlayerLine, abbrev string) []PlayerLine {
	out := make([]PlayerLine, 0, len(players)/2)
	for _, p := range players {
		if p.TeamAbbrev == abbrev {
			out = append(out, p)
		}
	}
	return out
}

func parseHexColor(hex string, fallback color.RGBA) color.RGBA {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return fallback
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return fallback
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func formatGameDate(dateText string) string {
	parsed, err := time.Parse("2006-01-02", dateText)
	if err != nil {
		return dateText
	}
	return parsed.Format("Jan 02")
}

func pad(text string, width int) string {
	if len(text) >= width {
		return text[:width]
	}
	return text + strings.Repeat(" ", width-len(text))
}

func padLeft(text string, width int) string {
	if len(text) >= width {
		return text[:width]
	}
	return strings.Repeat(" ", width-len(text)) + text
}
