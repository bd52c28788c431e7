package liquipedia

import (
	"bytes"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/roster-wayback/internal/domain/roster"
	"golang.org/x/net/html"
)

var (
	contentClassRegex = regexp.MustCompile(`content(\d+)`)
	tabClassRegex     = regexp.MustCompile(`tab(\d+)`)
)

// CategoryPage is one page of the team category listing.
type CategoryPage struct {
	TeamURLs []string
	NextURL  string
}

func ParseCategoryPage(body []byte, pageURL string) (CategoryPage, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return CategoryPage{}, crerr.Wrap(err, "parse category page")
	}

	out := CategoryPage{TeamURLs: make([]string, 0, 200)}
	doc.Find("#mw-pages .mw-content-ltr a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		if abs, err := resolveURL(pageURL, href); err == nil {
			out.TeamURLs = append(out.TeamURLs, abs)
		}
	})

	doc.Find("#mw-pages a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if !strings.Contains(a.Text(), "next page") {
			return true
		}
		if href, ok := a.Attr("href"); ok {
			if abs, err := resolveURL(pageURL, href); err == nil {
				out.NextURL = abs
			}
		}
		return false
	})

	return out, nil
}

// ParseTeamPage extracts every roster row of a team page, current and former
// squads alike.
func ParseTeamPage(body []byte, pageURL string) ([]roster.Record, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, crerr.Wrap(err, "parse team page")
	}

	teamID := nameFromURL(pageURL)
	if teamID == "" {
		return nil, crerr.Newf("team page %q has no name", pageURL)
	}
	teamName := strings.TrimSpace(doc.Find("#firstHeading span").First().Text())
	if teamName == "" {
		teamName = strings.TrimSpace(doc.Find("#firstHeading").First().Text())
	}
	if teamName == "" {
		teamName = roster.Unslugify(teamID)
	}
	team := roster.Team{ID: teamID, Name: teamName, LiquipediaURL: pageURL}

	section := doc.Find("#Player_Roster").Parent().NextAllFiltered("div")
	tabNames := gameVersionTabs(section)
	infoboxVersions := infoboxGameVersions(doc)

	out := make([]roster.Record, 0, 32)
	section.Find(".roster-card tr.Player").Each(func(_ int, row *goquery.Selection) {
		idLink := row.Find("td.ID a").First()
		nickname := strings.TrimSpace(idLink.Text())
		if nickname == "" {
			return
		}

		p := roster.Player{
			TeamID:   teamID,
			Nickname: nickname,
			Name:     strings.TrimSpace(row.Find("td.Name .LargeStuff").First().Text()),
			Position: strings.TrimSpace(row.Find("td.Position i").First().Text()),
			FlagName: strings.TrimSpace(row.Find("td.ID .flag img").First().AttrOr("title", "")),
		}
		p.IsCaptain = row.Find(`td.ID i[title="Captain"]`).Length() > 0

		if href, ok := idLink.Attr("href"); ok {
			if abs, err := resolveURL(pageURL, href); err == nil {
				p.LiquipediaURL = abs
				p.PlayerID = nameFromURL(abs)
			}
		}
		if p.PlayerID == "" {
			p.PlayerID = roster.Slugify(nickname)
		}
		if src, ok := row.Find("td.ID .flag img").First().Attr("src"); ok {
			if abs, err := resolveURL(pageURL, src); err == nil {
				p.FlagURL = abs
			}
		}

		if num, ok := enclosingContentTab(row); ok {
			p.GameVersion = tabNames[num]
		} else if len(infoboxVersions) == 1 {
			p.GameVersion = infoboxVersions[0]
		}

		applyDates(row, &p)
		out = append(out, roster.NewRecord(team, p))
	})

	return out, nil
}

// gameVersionTabs maps tab numbers to their labels for tabs named after a
// game, like "CS:GO".
func gameVersionTabs(section *goquery.Selection) map[string]string {
	out := make(map[string]string)
	section.Find(".nav-tabs li").Each(func(_ int, tab *goquery.Selection) {
		match := tabClassRegex.FindStringSubmatch(tab.AttrOr("class", ""))
		if match == nil {
			return
		}
		if _, exists := out[match[1]]; exists {
			return
		}
		text := strings.TrimSpace(tab.Text())
		if strings.HasPrefix(text, "CS") {
			out[match[1]] = text
		}
	})
	return out
}

func infoboxGameVersions(doc *goquery.Document) []string {
	var out []string
	doc.Find("div.infobox-description").EachWithBreak(func(_ int, desc *goquery.Selection) bool {
		if !strings.Contains(desc.Text(), "Games:") {
			return true
		}
		desc.Parent().Find("a").Each(func(_ int, a *goquery.Selection) {
			if text := strings.TrimSpace(a.Text()); text != "" {
				out = append(out, text)
			}
		})
		return false
	})
	return out
}

func enclosingContentTab(row *goquery.Selection) (string, bool) {
	num := ""
	row.Parents().EachWithBreak(func(_ int, parent *goquery.Selection) bool {
		if match := contentClassRegex.FindStringSubmatch(parent.AttrOr("class", "")); match != nil {
			num = match[1]
			return false
		}
		return true
	})
	return num, num != ""
}

func applyDates(row *goquery.Selection, p *roster.Player) {
	row.Find("td.Date").Each(func(_ int, cell *goquery.Selection) {
		label := cell.Find(".MobileStuffDate").First().Text()
		italic := cell.Find("i").First()
		text := ownText(italic)
		if text == "" {
			text = strings.TrimSpace(italic.Find("abbr").First().Text())
		}

		field, value, ok := roster.ParseDateField(label, text)
		if !ok {
			return
		}
		value.Apply(field, p)
	})
}

// ownText joins the direct text children of the first node in sel.
func ownText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	var b strings.Builder
	for node := sel.Get(0).FirstChild; node != nil; node = node.NextSibling {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
	}
	return strings.TrimSpace(b.String())
}

// nameFromURL returns the page name of a wiki URL in slug form. Links to
// missing pages carry the name in the title parameter instead.
func nameFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	name := ""
	if u.Query().Get("action") == "edit" {
		name = u.Query().Get("title")
	} else {
		name = path.Base(u.Path)
	}

	name = strings.TrimSpace(roster.Unslugify(name))
	if name == "" || name == "." || name == "/" || name == "index.php" {
		return ""
	}
	return roster.Slugify(name)
}
