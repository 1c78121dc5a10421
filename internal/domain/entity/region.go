package entity

// Region is a sido/gugun pair as used by signup and the region-change screen.
type Region struct {
	Sido  string
	Gugun string
}

// CityDistricts lists the selectable 시·도 → 시·군·구 pairs. The service area
// currently covers the pilot districts only.
var CityDistricts = map[string][]string{
	"서울": {"노원구", "도봉구", "성북구", "강북구", "중랑구"},
}

// Neighborhoods lists the selectable 동 per district for the recommendation
// wizard's region step.
var Neighborhoods = map[string][]string{
	"노원구": {"상계동", "중계동", "하계동", "월계동", "공릉동"},
}

// ValidRegion reports whether the sido/gugun pair is in the service area.
func ValidRegion(sido, gugun string) bool {
	districts, ok := CityDistricts[sido]
	if !ok {
		return false
	}
	for _, d := range districts {
		if d == gugun {
			return true
		}
	}

	return false
}
