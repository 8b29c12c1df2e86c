package service

import (
	"fmt"
	"strings"

	"github.com/samikd35/RebootEarth-Dana/internal/models"
)

// cropGuidance is the per-crop agronomic advice line appended to the
// generated text. Crops without an entry get the generic fallback.
var cropGuidance = map[string]string{
	"Rice":        "Maintain standing water of 5cm during the vegetative stage and drain before harvest.",
	"Maize":       "Plant at the onset of rains and side-dress nitrogen 4-6 weeks after emergence.",
	"Jute":        "Sow densely on low-lying land and harvest at early pod stage for best fiber.",
	"Cotton":      "Monitor for bollworm from flowering onwards and avoid waterlogging.",
	"Coconut":     "Mulch the basin and irrigate during dry spells; apply potash twice a year.",
	"Papaya":      "Ensure good drainage and remove male plants after flowering.",
	"Orange":      "Prune after harvest and irrigate at fruit set to reduce fruit drop.",
	"Apple":       "Requires winter chilling; thin fruit clusters to improve size.",
	"Muskmelon":   "Grow on raised beds with drip irrigation; reduce watering as fruits mature.",
	"Watermelon":  "Needs warm days and sandy loam; stop irrigation two weeks before harvest.",
	"Grapes":      "Trellis the vines and prune in the dormant season.",
	"Mango":       "Avoid irrigation during flowering; spray for hoppers at panicle emergence.",
	"Banana":      "Plant suckers in pits with compost and de-sucker monthly.",
	"Pomegranate": "Tolerates drought once established; regulate irrigation to prevent fruit cracking.",
	"Lentil":      "Sow on residual moisture after the main rains; avoid excess nitrogen.",
	"Blackgram":   "Short duration crop fitting well between cereal seasons.",
	"Mungbean":    "Harvest pods in two or three pickings as they mature unevenly.",
	"Mothbeans":   "Highly drought tolerant; suits sandy soils with minimal input.",
	"Pigeonpeas":  "Intercrop with cereals; the deep taproot improves soil structure.",
	"Kidneybeans": "Sensitive to heat at flowering; sow to avoid peak temperatures.",
	"Chickpea":    "Sow into cool, dry conditions; one irrigation at pod fill boosts yield.",
	"Coffee":      "Grow under partial shade and mulch heavily; prune after harvest.",
}

// adviceHeaders carry the fixed per-language openers used for generated
// advice and SMS formatting.
var adviceHeaders = map[string]string{
	"english":     "Agricultural Advice",
	"amharic":     "የእርሻ ምክር",
	"afaan_oromo": "Gorsa Qonnaa",
}

// AdviceService generates farmer-facing advisory text for a
// recommendation. English text is generated from the classification and
// feature vector; the other supported languages reuse the same structure
// with translated framing.
type AdviceService struct{}

// NewAdviceService creates a new advice generator
func NewAdviceService() *AdviceService {
	return &AdviceService{}
}

// Generate produces advice text in the requested language ("english",
// "amharic", "afaan_oromo"). Unknown languages fall back to English.
func (s *AdviceService) Generate(response *models.RecommendationResponse, language string) string {
	crop := response.Classification.Crop
	confidence := response.Classification.Confidence * 100

	var b strings.Builder
	switch language {
	case "amharic":
		fmt.Fprintf(&b, "%s: ለእርስዎ ማሳ የሚመከረው ሰብል %s ነው (%.0f%% እርግጠኝነት)።", adviceHeaders["amharic"], crop, confidence)
	case "afaan_oromo":
		fmt.Fprintf(&b, "%s: Midhaan lafa keessaniif gorfamu %s dha (amanamummaa %.0f%%).", adviceHeaders["afaan_oromo"], crop, confidence)
	default:
		fmt.Fprintf(&b, "%s: %s is recommended for your field (%.0f%% confidence).", adviceHeaders["english"], crop, confidence)
	}

	f := response.Features
	fmt.Fprintf(&b, "\nSoil: N %.0f, P %.0f, K %.0f, pH %.1f. Climate: %.1f°C, %.0f%% humidity, %.0f mm rainfall.",
		f.Nitrogen, f.Phosphorus, f.Potassium, f.PH, f.Temperature, f.Humidity, f.Rainfall)

	if guidance, ok := cropGuidance[crop]; ok {
		b.WriteString("\n")
		b.WriteString(guidance)
	} else {
		b.WriteString("\nConsult your local extension office for crop-specific guidance.")
	}

	if len(response.Classification.Alternatives) > 0 {
		alt := response.Classification.Alternatives[0]
		fmt.Fprintf(&b, "\nAlternative: %s (%.1f%%).", alt.Crop, alt.Score)
	}

	return b.String()
}
