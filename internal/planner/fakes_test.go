package planner

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"travelplanner/internal/models/response_models"
	"travelplanner/pkg/utils"
)

var errUpstream = errors.New("upstream down")

// recorder collects collaborator calls across fakes in call order.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(call string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type fakeWiki struct {
	rec     *recorder
	summary string
	err     error
}

func (f *fakeWiki) Summary(_ context.Context, name string) utils.FetchResult[string] {
	f.rec.add("summary:" + name)
	if f.err != nil {
		return utils.Fail[string](f.err)
	}
	return utils.Ok(f.summary)
}

type fakePlaces struct {
	rec         *recorder
	attractions []response_models.Place
	restaurants []response_models.Place
	err         error
}

func (f *fakePlaces) SearchPlaces(_ context.Context, name string, category response_models.PlaceCategory, limit int) utils.FetchResult[[]response_models.Place] {
	f.rec.add(fmt.Sprintf("places:%s:%d", category, limit))
	if f.err != nil {
		return utils.Fail[[]response_models.Place](f.err)
	}
	if category == response_models.CategoryRestaurant {
		return utils.Ok(f.restaurants)
	}
	return utils.Ok(f.attractions)
}

type fakeWeather struct {
	rec  *recorder
	days []response_models.ForecastDay
	err  error
}

func (f *fakeWeather) Forecast(_ context.Context, name string, days int) utils.FetchResult[[]response_models.ForecastDay] {
	f.rec.add(fmt.Sprintf("forecast:%d", days))
	if f.err != nil {
		return utils.Fail[[]response_models.ForecastDay](f.err)
	}
	if days < len(f.days) {
		return utils.Ok(f.days[:days])
	}
	return utils.Ok(f.days)
}

var dayCountRe = regexp.MustCompile(`Create a realistic (\d+)-day itinerary`)

// fakeGenerator echoes a short answer per prompt and remembers every prompt.
// Itinerary prompts get one "Day N" block per requested day.
type fakeGenerator struct {
	rec     *recorder
	err     error
	mu      sync.Mutex
	prompts []string
	temps   []float32
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Generate(_ context.Context, prompt string, temperature float32) (string, error) {
	f.rec.add(fmt.Sprintf("generate:%.1f", temperature))
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.temps = append(f.temps, temperature)
	f.mu.Unlock()

	if f.err != nil {
		return "", f.err
	}
	if m := dayCountRe.FindStringSubmatch(prompt); m != nil {
		n, _ := strconv.Atoi(m[1])
		var b strings.Builder
		for d := 1; d <= n; d++ {
			fmt.Fprintf(&b, "Day %d\nMorning: walk\nAfternoon: museum\nEvening: dinner\n\n", d)
		}
		return b.String(), nil
	}
	return "Take the overnight train.", nil
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func jaipurPlaces() ([]response_models.Place, []response_models.Place) {
	attractions := []response_models.Place{
		{Name: "Amber Fort", Category: response_models.CategoryAttraction, Latitude: 26.9855, Longitude: 75.8513},
		{Name: "Hawa Mahal", Category: response_models.CategoryAttraction, Latitude: 26.9239, Longitude: 75.8267},
	}
	restaurants := []response_models.Place{
		{Name: "Laxmi Misthan Bhandar", Category: response_models.CategoryRestaurant, Latitude: 26.9221, Longitude: 75.8237},
	}
	return attractions, restaurants
}

func jaipurForecast() []response_models.ForecastDay {
	return []response_models.ForecastDay{
		{Date: "2026-10-16", TempMax: 33.1, TempMin: 21.4, RainMM: 0, WeatherCode: 0},
		{Date: "2026-10-17", TempMax: 32.5, TempMin: 20.9, RainMM: 0.4, WeatherCode: 2},
		{Date: "2026-10-18", TempMax: 31.0, TempMin: 20.2, RainMM: 1.2, WeatherCode: 61},
	}
}
