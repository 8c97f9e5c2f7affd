// SPDX-License-Identifier: Apache-2.0

package extraction

import "strings"

// AliasSeparator joins the aliases of one language in flat output.
const AliasSeparator = ","

// Flatten renders the record as a flat document: identifier, per-language
// labels, descriptions and joined aliases, and one key per parsed property.
func (r *DetailRecord) Flatten() map[string]any {
	aliases := make(map[string]string, len(r.Aliases))
	for lang, values := range r.Aliases {
		aliases[lang] = strings.Join(values, AliasSeparator)
	}
	out := map[string]any{
		"_id":          r.ID,
		"label":        copyStrings(r.Labels),
		"descriptions": copyStrings(r.Descriptions),
		"aliases":      aliases,
	}
	for pid, values := range r.Properties {
		out[pid] = values
	}
	return out
}

// RenamePropertyIDs returns a copy of data with every key found in nameMap
// replaced by its mapped name. Keys absent from nameMap are kept as is.
func RenamePropertyIDs(nameMap map[string]string, data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	for pid, name := range nameMap {
		v, ok := data[pid]
		if !ok {
			continue
		}
		delete(out, pid)
		out[name] = v
	}
	return out
}

func copyStrings(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
