// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package siteview

import (
	"cmp"
	"slices"

	"github.com/stencilcms/composer/lib/schema/site"
)

// resolveLabels produces one LabelView per label, sorted by locale id.
// A dev-mode entity with no labels gets a synthetic label in every
// locale carrying the entity's value, so dev-mode links and workflows
// are never blank in the explorer.
func resolveLabels(labels []site.Label, devMode bool, value string, localesByID map[site.LocaleID]site.Locale, locales []site.Locale) []LabelView {
	if len(labels) == 0 {
		if !devMode {
			return nil
		}
		synthetic := make([]LabelView, 0, len(locales))
		for _, locale := range locales {
			synthetic = append(synthetic, LabelView{
				Label:     site.Label{Locale: locale.ID, LabelValue: value},
				Locale:    locale,
				Synthetic: true,
			})
		}
		return synthetic
	}

	resolved := make([]LabelView, 0, len(labels))
	for _, label := range labels {
		locale, exists := localesByID[label.Locale]
		if !exists {
			locale = site.Locale{ID: label.Locale}
		}
		resolved = append(resolved, LabelView{Label: label, Locale: locale})
	}
	slices.SortStableFunc(resolved, func(a, b LabelView) int {
		return cmp.Compare(a.Label.Locale, b.Label.Locale)
	})
	return resolved
}

// LabelFor returns the label text for a locale, or the empty string.
func LabelFor(labels []LabelView, locale site.LocaleID) string {
	for _, label := range labels {
		if label.Label.Locale == locale {
			return label.Label.LabelValue
		}
	}
	return ""
}
