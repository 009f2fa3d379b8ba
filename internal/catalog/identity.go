package catalog

import (
	"strconv"

	"github.com/ferminmg/scrapingcines/internal/title"
)

// IdentityKey derives the stable key under which records from different
// sources are recognized as the same film: the TMDB id when the record has
// one, the normalized title otherwise. Records with equal keys are merged,
// never duplicated.
func (m Movie) IdentityKey() string {
	if m.TMDBID != 0 {
		return "tmdb:" + strconv.Itoa(m.TMDBID)
	}
	return "title:" + title.Normalize(m.Title)
}
