package match

import (
	"fmt"

	"github.com/citescan/citescan/internal/model"
)

// Similarity thresholds. Addresses get a more lenient threshold because
// formatting varies wildly across directories. Phones are never fuzzy: a
// single wrong digit is a different business.
const (
	nameThreshold    = 0.8
	addressThreshold = 0.75
)

// Compare checks a scraped NAP against the canonical identity and returns a
// per-field verdict with an overall confidence score. Pure and
// deterministic; no I/O.
func Compare(canonical model.CanonicalIdentity, scraped model.ScrapedNAP) model.NAPComparison {
	if scraped.Empty() {
		return model.NAPComparison{
			Status:     model.StatusMissing,
			Confidence: 0,
			Details:    []string{"Business not found in directory"},
		}
	}

	canonAddress := canonical.Address()

	nameMatch := fieldMatch(NormalizeName(canonical.BusinessName), NormalizeName(scraped.Name), nameThreshold)
	addressMatch := fieldMatch(NormalizeAddress(canonAddress), NormalizeAddress(scraped.Address), addressThreshold)

	canonPhone := NormalizePhone(canonical.Phone)
	phoneMatch := canonPhone != "" && canonPhone == NormalizePhone(scraped.Phone)

	// Details cover only the failing fields where the directory actually
	// listed a value, in fixed name → address → phone order so downstream
	// remediation text stays diffable.
	var details []string
	if !nameMatch && scraped.Name != "" {
		details = append(details, fmt.Sprintf("Name: found %q, expected %q", scraped.Name, canonical.BusinessName))
	}
	if !addressMatch && scraped.Address != "" {
		details = append(details, fmt.Sprintf("Address: found %q, expected %q", scraped.Address, canonAddress))
	}
	if !phoneMatch && scraped.Phone != "" {
		details = append(details, fmt.Sprintf("Phone: found %q, expected %q", scraped.Phone, canonical.Phone))
	}

	// Only fields the canonical record populates count toward the verdict.
	populated, matched := 0, 0
	for _, f := range []struct {
		value string
		match bool
	}{
		{canonical.BusinessName, nameMatch},
		{canonAddress, addressMatch},
		{canonPhone, phoneMatch},
	} {
		if f.value == "" {
			continue
		}
		populated++
		if f.match {
			matched++
		}
	}

	confidence := 0
	if populated > 0 {
		confidence = 100 * matched / populated
	}

	var status model.MatchStatus
	switch {
	case populated > 0 && matched == populated:
		status = model.StatusMatch
	case matched == 0:
		status = model.StatusMismatch
	default:
		status = model.StatusPartial
	}

	return model.NAPComparison{
		Status:       status,
		Confidence:   confidence,
		NameMatch:    nameMatch,
		AddressMatch: addressMatch,
		PhoneMatch:   phoneMatch,
		Details:      details,
	}
}

func fieldMatch(canonical, scraped string, threshold float64) bool {
	if canonical == "" || scraped == "" {
		return false
	}
	return Similarity(canonical, scraped) >= threshold
}

// Similarity returns a Levenshtein-based ratio in [0, 1]: 1 for identical
// strings, 0 when either is empty.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	ra, rb := []rune(a), []rune(b)
	m, n := len(ra), len(rb)

	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = 1 + min(prev[j], min(curr[j-1], prev[j-1]))
			}
		}
		prev, curr = curr, prev
	}

	longest := m
	if n > longest {
		longest = n
	}
	return 1 - float64(prev[n])/float64(longest)
}
