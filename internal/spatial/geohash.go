package spatial

// Base32 encoding for geohash
const base32 = "0123456789bcdefghjkmnpqrstuvwxyz"

// EncodeGeohash encodes latitude and longitude into a geohash string
// precision: number of characters in the geohash (1-12)
func EncodeGeohash(lat, lon float64, precision int) string {
	if precision < 1 {
		precision = 1
	}
	if precision > 12 {
		precision = 12
	}

	latRange := []float64{-90.0, 90.0}
	lonRange := []float64{-180.0, 180.0}

	geohash := make([]byte, 0, precision)
	bits := 0
	bit := 0
	ch := 0

	for len(geohash) < precision {
		if bit%2 == 0 {
			// Longitude
			mid := (lonRange[0] + lonRange[1]) / 2
			if lon > mid {
				ch |= (1 << (4 - bits))
				lonRange[0] = mid
			} else {
				lonRange[1] = mid
			}
		} else {
			// Latitude
			mid := (latRange[0] + latRange[1]) / 2
			if lat > mid {
				ch |= (1 << (4 - bits))
				latRange[0] = mid
			} else {
				latRange[1] = mid
			}
		}

		bits++
		if bits == 5 {
			geohash = append(geohash, base32[ch])
			bits = 0
			ch = 0
		}
		bit++
	}

	return string(geohash)
}

// geohashCellSizes holds approximate cell sizes in meters at the equator,
// indexed by precision 1-12.
var geohashCellSizes = [13]float64{
	0,
	5000000, 625000, 123000, 19500, 3900, 610,
	120, 19, 3.7, 0.6, 0.12, 0.019,
}

// GeohashPrecisionForDistance returns the smallest geohash precision whose
// cell fits inside the given distance, e.g. a 1000m analysis buffer maps to
// a 6-character geohash.
func GeohashPrecisionForDistance(distanceMeters float64) int {
	for precision := 1; precision <= 12; precision++ {
		if geohashCellSizes[precision] <= distanceMeters {
			return precision
		}
	}
	return 12
}
