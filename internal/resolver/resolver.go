package resolver

import (
	"context"
	"log"

	"github.com/samikd35/RebootEarth-Dana/internal/models"
	"github.com/samikd35/RebootEarth-Dana/internal/spatial"
)

// Source produces a feature vector for a buffered coordinate. It may fail;
// the Resolver wrapping it may not.
type Source interface {
	// Resolve returns the feature vector and a data source tag.
	Resolve(ctx context.Context, coord models.Coordinate, year, bufferMeters int) (models.FeatureVector, models.ResolverMetadata, error)
	// Mode reports "real" or "synthetic" for the health surface.
	Mode() string
}

// SyntheticSource generates deterministic zone-based features. It never
// fails.
type SyntheticSource struct{}

// NewSyntheticSource creates a synthetic feature source
func NewSyntheticSource() *SyntheticSource {
	return &SyntheticSource{}
}

func (s *SyntheticSource) Mode() string { return "synthetic" }

func (s *SyntheticSource) Resolve(_ context.Context, coord models.Coordinate, _, bufferMeters int) (models.FeatureVector, models.ResolverMetadata, error) {
	features, zoneName := synthesizeFeatures(coord.Latitude, coord.Longitude)
	return features, regionMetadata("synthetic", zoneName, coord, bufferMeters), nil
}

// RealSource resolves features from the satellite-embedding provider.
type RealSource struct {
	client *AlphaEarthClient
}

// NewRealSource creates a provider-backed feature source
func NewRealSource(client *AlphaEarthClient) *RealSource {
	return &RealSource{client: client}
}

func (s *RealSource) Mode() string { return "real" }

func (s *RealSource) Resolve(ctx context.Context, coord models.Coordinate, year, bufferMeters int) (models.FeatureVector, models.ResolverMetadata, error) {
	embedding, err := s.client.FetchEmbedding(ctx, coord, year, bufferMeters)
	if err != nil {
		return models.FeatureVector{}, models.ResolverMetadata{}, err
	}
	return reduceEmbedding(embedding), regionMetadata("real", "", coord, bufferMeters), nil
}

// Resolver is the never-failing feature resolver. The primary source is
// tried first; any failure there (provider down, timeout, no data) degrades
// silently to zone synthesis so the caller never sees an error.
type Resolver struct {
	primary Source
}

// New constructs a resolver around the chosen primary source. Passing nil
// runs in synthetic-only mode.
func New(primary Source) *Resolver {
	if primary == nil {
		primary = NewSyntheticSource()
	}
	return &Resolver{primary: primary}
}

// Mode reports the configured feature source for the health surface.
func (r *Resolver) Mode() string { return r.primary.Mode() }

// Resolve produces a feature vector for the coordinate. It always returns a
// usable vector inside the documented ranges.
func (r *Resolver) Resolve(ctx context.Context, coord models.Coordinate, year, bufferMeters int) (models.FeatureVector, models.ResolverMetadata) {
	features, meta, err := r.primary.Resolve(ctx, coord, year, bufferMeters)
	if err == nil {
		return features, meta
	}

	log.Printf("Feature source unavailable for (%.4f, %.4f), using zone synthesis: %v",
		coord.Latitude, coord.Longitude, err)

	features, zoneName := synthesizeFeatures(coord.Latitude, coord.Longitude)
	return features, regionMetadata("synthetic", zoneName, coord, bufferMeters)
}

func regionMetadata(source, zoneName string, coord models.Coordinate, bufferMeters int) models.ResolverMetadata {
	precision := spatial.GeohashPrecisionForDistance(float64(bufferMeters))
	return models.ResolverMetadata{
		DataSource:   source,
		Zone:         zoneName,
		Geohash:      spatial.EncodeGeohash(coord.Latitude, coord.Longitude, precision),
		RegionAreaM2: spatial.CapAreaM2(float64(bufferMeters)),
	}
}
