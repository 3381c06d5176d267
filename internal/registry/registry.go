// Package registry holds the static configuration for every directory the
// citation scanner targets. Selector-based scraping is fragile by nature;
// the health probe cycle detects broken adapters and marks them degraded so
// they are excluded from client health scores rather than producing false
// negatives.
package registry

import (
	"fmt"

	"github.com/citescan/citescan/internal/model"
)

// directories is the full registry, ordered critical → high → medium. This
// order is also the stable ordering of per-directory results in a scan.
var directories = []model.DirectoryConfig{
	{
		Key:         "google_business",
		DisplayName: "Google Business Profile",
		Importance:  model.ImportanceCritical,
		Strategy:    model.StrategyExternalAPI,
	},
	{
		Key:              "yelp",
		DisplayName:      "Yelp",
		Importance:       model.ImportanceCritical,
		Strategy:         model.StrategyURLTemplate,
		SearchURLPattern: "https://www.yelp.com/search?find_desc={business}&find_loc={city}+{state}",
		Selectors: model.Selectors{
			ListingLink: `h3.css-1agk4wl a[href^="/biz/"]`,
			Name:        `h1.css-1se897c`,
			Address:     `address[id="map-box-address"]`,
			Phone:       `p[class*="css-"] a[href^="tel:"]`,
		},
		RequiresDetailPage: true,
		DetailSelectors: model.Selectors{
			Name:    `h1.css-1se897c`,
			Address: `address[id="map-box-address"]`,
			Phone:   `p[class*="css-"] a[href^="tel:"]`,
		},
	},
	{
		Key:              "facebook",
		DisplayName:      "Facebook",
		Importance:       model.ImportanceCritical,
		Strategy:         model.StrategyURLTemplate,
		SearchURLPattern: "https://www.facebook.com/search/pages/?q={business}+{city}+{state}",
		Selectors: model.Selectors{
			ListingLink: `a[href*="facebook.com/"][role="link"]`,
			Name:        `h1[class*="x1heor9g"]`,
			Address:     `[data-testid="profile-address"]`,
			Phone:       `[data-testid="profile-phone"]`,
		},
		RequiresDetailPage: true,
		DetailSelectors: model.Selectors{
			Name:    `h1[class*="x1heor9g"]`,
			Address: `[data-testid="profile-address"]`,
			Phone:   `[data-testid="profile-phone"]`,
		},
	},
	{
		Key:              "bbb",
		DisplayName:      "Better Business Bureau",
		Importance:       model.ImportanceHigh,
		Strategy:         model.StrategyURLTemplate,
		SearchURLPattern: "https://www.bbb.org/search?find_text={business}&find_loc={city}+{state}",
		Selectors: model.Selectors{
			ListingLink: `a[data-component="Link"][href*="/profile/"]`,
			Name:        `span[itemprop="name"]`,
			Address:     `address span[itemprop="streetAddress"]`,
			Phone:       `a[href^="tel:"]`,
		},
		RequiresDetailPage: true,
		DetailSelectors: model.Selectors{
			Name:    `h1[data-cy="business-name"]`,
			Address: `[data-cy="address-line1"]`,
			Phone:   `a[data-cy="phone-number"]`,
		},
	},
	{
		Key:              "yellowpages",
		DisplayName:      "Yellow Pages",
		Importance:       model.ImportanceHigh,
		Strategy:         model.StrategyURLTemplate,
		SearchURLPattern: "https://www.yellowpages.com/search?search_terms={business}&geo_location_terms={city}+{state}",
		Selectors: model.Selectors{
			ListingLink: `a.business-name`,
			Name:        `h1[itemprop="name"]`,
			Address:     `span[itemprop="streetAddress"]`,
			Phone:       `a[class*="phone"]`,
		},
		RequiresDetailPage: true,
		DetailSelectors: model.Selectors{
			Name:    `h1[itemprop="name"]`,
			Address: `span[itemprop="streetAddress"]`,
			Phone:   `a[class*="phone"]`,
		},
	},
	{
		Key:              "bing_places",
		DisplayName:      "Bing Places",
		Importance:       model.ImportanceHigh,
		Strategy:         model.StrategyURLTemplate,
		SearchURLPattern: "https://www.bing.com/maps?q={business}+{city}+{state}&lvl=13",
		Selectors: model.Selectors{
			ListingLink: `a.listings-item`,
			Name:        `div[class*="business-name"]`,
			Address:     `div[class*="address"]`,
			Phone:       `a[href^="tel:"]`,
		},
	},
	{
		Key:              "apple_maps",
		DisplayName:      "Apple Maps",
		Importance:       model.ImportanceHigh,
		Strategy:         model.StrategyURLTemplate,
		SearchURLPattern: "https://maps.apple.com/?q={business}+{city}+{state}",
		Selectors: model.Selectors{
			ListingLink: `a[data-testid="place-result"]`,
			Name:        `h1[data-testid="place-name"]`,
			Address:     `[data-testid="place-address"]`,
			Phone:       `a[href^="tel:"]`,
		},
	},
	{
		Key:              "mapquest",
		DisplayName:      "MapQuest",
		Importance:       model.ImportanceHigh,
		Strategy:         model.StrategyURLTemplate,
		SearchURLPattern: "https://www.mapquest.com/search/results?query={business}+{city}+{state}",
		Selectors: model.Selectors{
			ListingLink: `a.result-name`,
			Name:        `h1.name`,
			Address:     `div.address`,
			Phone:       `a.phone`,
		},
	},
	{
		Key:              "foursquare",
		DisplayName:      "Foursquare",
		Importance:       model.ImportanceMedium,
		Strategy:         model.StrategyURLTemplate,
		SearchURLPattern: "https://foursquare.com/v/{business}-{city}",
		Selectors: model.Selectors{
			ListingLink: `a[href*="/v/"]`,
			Name:        `h1[class*="venueHeaderName"]`,
			Address:     `span[class*="venueAddress"]`,
			Phone:       `a[href^="tel:"]`,
		},
	},
	{
		Key:              "hotfrog",
		DisplayName:      "Hotfrog",
		Importance:       model.ImportanceMedium,
		Strategy:         model.StrategyURLTemplate,
		SearchURLPattern: "https://www.hotfrog.com/search/{state}/{city}/{business}",
		Selectors: model.Selectors{
			ListingLink: `h3.business-name a`,
			Name:        `h1.businessName`,
			Address:     `span.address`,
			Phone:       `span.phonenumber`,
		},
	},
	{
		Key:              "manta",
		DisplayName:      "Manta",
		Importance:       model.ImportanceMedium,
		Strategy:         model.StrategyURLTemplate,
		SearchURLPattern: "https://www.manta.com/search?search_source=nav&search={business}&location={city}+{state}",
		Selectors: model.Selectors{
			ListingLink: `a[data-click-type="company"]`,
			Name:        `h1[data-cy="company-name"]`,
			Address:     `address[data-cy="address"]`,
			Phone:       `a[data-cy="phone"]`,
		},
		RequiresDetailPage: true,
		DetailSelectors: model.Selectors{
			Name:    `h1[data-cy="company-name"]`,
			Address: `address[data-cy="address"]`,
			Phone:   `a[data-cy="phone"]`,
		},
	},
	{
		Key:              "superpages",
		DisplayName:      "Superpages",
		Importance:       model.ImportanceMedium,
		Strategy:         model.StrategyURLTemplate,
		SearchURLPattern: "https://www.superpages.com/search?search_terms={business}&geo_location_terms={city}+{state}",
		Selectors: model.Selectors{
			ListingLink: `a.business-name`,
			Name:        `span[itemprop="name"]`,
			Address:     `span[itemprop="streetAddress"]`,
			Phone:       `a[class*="phone"]`,
		},
	},
	{
		Key:              "citysearch",
		DisplayName:      "Citysearch",
		Importance:       model.ImportanceMedium,
		Strategy:         model.StrategyURLTemplate,
		SearchURLPattern: "https://www.citysearch.com/find/{business}/{city}-{state}",
		Selectors: model.Selectors{
			ListingLink: `a.cs-listing-title`,
			Name:        `h1.businessName`,
			Address:     `address.businessAddress`,
			Phone:       `span.phoneNumber`,
		},
	},
}

// byKey provides fast lookup; built once at init after validation.
var byKey = buildIndex()

func buildIndex() map[string]model.DirectoryConfig {
	index := make(map[string]model.DirectoryConfig, len(directories))
	for _, d := range directories {
		index[d.Key] = d
	}
	return index
}

// All returns every registered directory in registry order. Callers must not
// modify the returned slice.
func All() []model.DirectoryConfig {
	return directories
}

// ByKey looks up a directory by its stable key.
func ByKey(key string) (model.DirectoryConfig, bool) {
	d, ok := byKey[key]
	return d, ok
}

// Keys returns every registered directory key in registry order.
func Keys() []string {
	keys := make([]string, len(directories))
	for i, d := range directories {
		keys[i] = d.Key
	}
	return keys
}

// Validate checks registry invariants: unique keys, and NAP selectors on at
// least one page for every url-template entry. The CLI calls this at startup
// and treats any error as fatal.
func Validate() error {
	return validate(directories)
}

func validate(entries []model.DirectoryConfig) error {
	seen := make(map[string]struct{}, len(entries))
	for _, d := range entries {
		if d.Key == "" {
			return fmt.Errorf("directory %q has an empty key", d.DisplayName)
		}
		if _, dup := seen[d.Key]; dup {
			return fmt.Errorf("duplicate directory key %q", d.Key)
		}
		seen[d.Key] = struct{}{}

		if d.Strategy != model.StrategyURLTemplate {
			continue
		}
		if d.SearchURLPattern == "" {
			return fmt.Errorf("directory %q has no search URL pattern", d.Key)
		}
		if selectorsIncomplete(d.Selectors) && selectorsIncomplete(d.DetailSelectors) {
			return fmt.Errorf("directory %q lacks name/address/phone selectors on both the search and detail page", d.Key)
		}
		if d.RequiresDetailPage && d.Selectors.ListingLink == "" {
			return fmt.Errorf("directory %q requires a detail page but has no listing link selector", d.Key)
		}
	}
	return nil
}

func selectorsIncomplete(s model.Selectors) bool {
	return s.Name == "" || s.Address == "" || s.Phone == ""
}
