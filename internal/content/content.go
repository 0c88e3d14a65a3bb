// Package content assembles essay files for the Astro blog: frontmatter
// generation, full-content assembly and the derived repository file path.
package content

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"
)

// EssayDir is the content repository directory holding published essays.
const EssayDir = "src/content/essays"

// cst is the timezone all publish timestamps and path dates are rendered in.
var cst = time.FixedZone("CST", 8*60*60) //nolint: gochecknoglobals

// Markdown stripping patterns used to derive a readable path slug from the
// essay body.
var (
	reFrontmatter = regexp.MustCompile(`(?s)^---.*?---\n*`)
	reMDImage     = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	reMDLink      = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	reMDSymbol    = regexp.MustCompile("[#*`_~\\->|/]")
	reWhitespace  = regexp.MustCompile(`\s+`)
	reCJKAlpha    = regexp.MustCompile(`[\x{4e00}-\x{9fa5}a-zA-Z]`)
)

// Now returns the current time in the publishing timezone.
func Now() time.Time {
	return time.Now().In(cst)
}

// Frontmatter renders the essay frontmatter block for the given publish time.
func Frontmatter(pubDate time.Time) string {
	return fmt.Sprintf("---\npubDate: %q\n---\n\n", pubDate.In(cst).Format("2006-01-02 15:04:05"))
}

// frontmatterWithTitle renders a frontmatter block carrying both a title and
// the publish time.
func frontmatterWithTitle(title string, pubDate time.Time) string {
	return fmt.Sprintf("---\ntitle: %q\npubDate: %q\n---\n\n",
		title, pubDate.In(cst).Format("2006-01-02 15:04:05"))
}

// Assemble prepends a generated frontmatter block to the essay body.
func Assemble(body string, pubDate time.Time) string {
	return Frontmatter(pubDate) + body
}

// AssembleWithTitle prepares an uploaded markdown document for publishing.
// A document that already opens with a frontmatter block is kept verbatim;
// otherwise a block with the title and publish time is generated.
func AssembleWithTitle(body, title string, pubDate time.Time) string {
	if reFrontmatter.MatchString(body) {
		return body
	}

	return frontmatterWithTitle(title, pubDate) + body
}

// slug extracts the first four CJK or ASCII-letter runes from s after
// stripping frontmatter, markdown images, links, symbols and whitespace.
// It returns an empty string when no such runes exist.
func slug(s string) string {
	plain := s
	plain = reFrontmatter.ReplaceAllString(plain, "")
	plain = reMDImage.ReplaceAllString(plain, "")
	plain = reMDLink.ReplaceAllString(plain, "$1")
	plain = reMDSymbol.ReplaceAllString(plain, "")
	plain = reWhitespace.ReplaceAllString(plain, "")

	var b strings.Builder
	count := 0
	for _, r := range plain {
		if count >= 4 {
			break
		}
		if reCJKAlpha.MatchString(string(r)) {
			b.WriteRune(r)
			count++
		}
	}

	return b.String()
}

// timestampSuffix renders the time-of-day plus a random three-digit
// discriminator that keeps two essays published the same second apart.
func timestampSuffix(now time.Time) string {
	return fmt.Sprintf("%s-%d", now.Format("150405"), 100+rand.IntN(900)) //nolint: gosec
}

// FilePath derives the repository path for an assembled essay. The name
// carries the publish date, up to four leading content runes, and a
// time-plus-random suffix: "2025-01-02-hell-150405-123.md".
func FilePath(assembled string, now time.Time) string {
	now = now.In(cst)
	datePrefix := now.Format("2006-01-02")
	suffix := timestampSuffix(now)

	if s := slug(assembled); s != "" {
		return fmt.Sprintf("%s/%s-%s-%s.md", EssayDir, datePrefix, s, suffix)
	}

	return fmt.Sprintf("%s/%s-%s.md", EssayDir, datePrefix, suffix)
}

// FilePathForTitle derives the repository path for a titled document, slugging
// the title instead of the body.
func FilePathForTitle(title string, now time.Time) string {
	now = now.In(cst)
	datePrefix := now.Format("2006-01-02")
	suffix := timestampSuffix(now)

	if s := slug(title); s != "" {
		return fmt.Sprintf("%s/%s-%s-%s.md", EssayDir, datePrefix, s, suffix)
	}

	return fmt.Sprintf("%s/%s-%s.md", EssayDir, datePrefix, suffix)
}

// Preview flattens newlines and truncates s to at most n runes for use in
// commit messages.
func Preview(s string, n int) string {
	flat := strings.ReplaceAll(s, "\n", " ")
	runes := []rune(flat)
	if len(runes) <= n {
		return flat
	}

	return string(runes[:n])
}
