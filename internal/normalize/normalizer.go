// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"sort"
	"strings"

	"github.com/corpgraph/corpgraph/internal/extraction"
)

// CorpIDPrefix prefixes the entity identifier to form Record.CorpID.
const CorpIDPrefix = "corp_"

// Normalizer reshapes DetailRecords into Records. It holds no mutable state;
// Normalize is a pure function of its input.
type Normalizer struct {
	nameMap   map[string]string
	pids      []string
	preferred []string
}

// NormalizerParams configures a Normalizer.
type NormalizerParams struct {
	// NameMap maps property ids to semantic names.
	NameMap map[string]string
	// PreferredLanguages decides which single language the label,
	// description and alias entries are taken from.
	PreferredLanguages []string
}

// NewNormalizer creates a new Normalizer.
func NewNormalizer(params NormalizerParams) *Normalizer {
	pids := make([]string, 0, len(params.NameMap))
	for pid := range params.NameMap {
		pids = append(pids, pid)
	}
	sort.Strings(pids)

	preferred := params.PreferredLanguages
	if len(preferred) == 0 {
		preferred = []string{"en"}
	}
	return &Normalizer{nameMap: params.NameMap, pids: pids, preferred: preferred}
}

// Normalize maps record onto the output schema using nameMap and English as
// the preferred language.
func Normalize(nameMap map[string]string, record *extraction.DetailRecord) Record {
	return NewNormalizer(NormalizerParams{NameMap: nameMap}).Normalize(record)
}

// Normalize builds the Record for a DetailRecord. Reference blocks and
// location lists take the first parsed value of their property only.
// Language entries are filled only when at least one mapped property is
// present on the record.
func (n *Normalizer) Normalize(record *extraction.DetailRecord) Record {
	out := Record{
		SourceID:        record.ID,
		CorpID:          CorpIDPrefix + record.ID,
		Label:           []LangEntry{},
		Descriptions:    []LangEntry{},
		Aliases:         []AliasEntry{},
		Headquarters:    [][]string{},
		Country:         [][]string{},
		OfficialWebsite: []string{},
	}

	present := false
	for _, pid := range n.pids {
		values, ok := record.Properties[pid]
		if !ok {
			continue
		}
		present = true

		switch n.nameMap[pid] {
		case NameIndustry:
			if ref, ok := firstRef(values); ok {
				out.Industry = referenceBlock(pid, ref)
			}
		case NameFoundedBy:
			if ref, ok := firstRef(values); ok {
				out.FoundedBy = referenceBlock(pid, ref)
			}
		case NameHeadquarters:
			if ref, ok := firstRef(values); ok {
				out.Headquarters = append(out.Headquarters, []string{ref.ID, ref.Label})
			}
		case NameCountry:
			if ref, ok := firstRef(values); ok {
				out.Country = append(out.Country, []string{ref.ID, ref.Label})
			}
		case NameOfficialWebsite:
			if s, ok := firstString(values); ok {
				out.OfficialWebsite = append(out.OfficialWebsite, s)
			}
		case NameHasParts:
			out.Subsidiary = ReferenceBlock{Source: []string{pid}, Value: []Reference{}}
		}
	}

	if present {
		if lang, ok := n.pickLanguage(keys(record.Labels)); ok {
			out.Label = []LangEntry{{Lang: lang, Value: record.Labels[lang]}}
		}
		if lang, ok := n.pickLanguage(keys(record.Descriptions)); ok {
			out.Descriptions = []LangEntry{{Lang: lang, Value: record.Descriptions[lang]}}
		}
		if lang, ok := n.pickLanguage(keys(record.Aliases)); ok {
			joined := strings.Join(record.Aliases[lang], extraction.AliasSeparator)
			out.Aliases = []AliasEntry{{Lang: lang, Value: []string{joined}}}
		}
	}
	return out
}

// pickLanguage returns the first preferred language in available, else the
// lexicographically smallest one.
func (n *Normalizer) pickLanguage(available []string) (string, bool) {
	if len(available) == 0 {
		return "", false
	}
	for _, lang := range n.preferred {
		for _, a := range available {
			if a == lang {
				return lang, true
			}
		}
	}
	return available[0], true
}

func referenceBlock(pid string, ref extraction.EntityRef) ReferenceBlock {
	return ReferenceBlock{
		Source: []string{pid},
		Value:  []Reference{{Identifier: ref.ID, Label: ref.Label}},
	}
}

func firstRef(values []extraction.Value) (extraction.EntityRef, bool) {
	if len(values) == 0 {
		return extraction.EntityRef{}, false
	}
	ref, ok := values[0].(extraction.EntityRef)
	return ref, ok
}

func firstString(values []extraction.Value) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	switch v := values[0].(type) {
	case extraction.URL:
		return string(v), true
	case extraction.Text:
		return string(v), true
	default:
		return "", false
	}
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
