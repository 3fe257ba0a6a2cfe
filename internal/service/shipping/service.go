package shipping

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Options перевозчики, доступные для города
type Options struct {
	City     string   `json:"city"`
	Carriers []string `json:"options"`
}

// Service подбор перевозчиков по городу доставки
type Service struct {
	localCities []string
}

// NewService создает сервис. localCities - города с курьером PICAP (в нормализованном виде).
func NewService(localCities ...string) *Service {
	if len(localCities) == 0 {
		localCities = []string{"bogota"}
	}
	normalized := make([]string, 0, len(localCities))
	for _, c := range localCities {
		normalized = append(normalized, FoldCity(c))
	}
	return &Service{localCities: normalized}
}

// OptionsFor возвращает перевозчиков: PICAP и INTERRAPIDISIMO для местных городов, иначе только INTERRAPIDISIMO
func (s *Service) OptionsFor(city string) Options {
	folded := FoldCity(city)
	for _, local := range s.localCities {
		if local != "" && strings.Contains(folded, local) {
			return Options{City: city, Carriers: []string{domain.CarrierPicap, domain.CarrierInterrapidisimo}}
		}
	}
	return Options{City: city, Carriers: []string{domain.CarrierInterrapidisimo}}
}

// FoldCity убирает диакритику, пробелы по краям и приводит к нижнему регистру: "Bogotá D.C." -> "bogota d.c."
func FoldCity(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		folded = strings.TrimSpace(s)
	}
	return strings.ToLower(folded)
}
