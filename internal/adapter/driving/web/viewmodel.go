package web

import (
	"strconv"

	vm "github.com/ericfisherdev/kbdash/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/kbdash/internal/application"
)

// Fallback texts shown when a widget's data could not be loaded.
const (
	CountUnavailableText   = "Indisponível"
	VersionUnavailableText = "Online"
	ChangelogErrorText     = "Erro ao carregar histórico."
)

const (
	countUnavailableHTML = `<span class="kb-unavailable">` + CountUnavailableText + `</span>`
	changelogErrorHTML   = `<p class="changelog-error">` + ChangelogErrorText + `</p>`
)

// toDashboardViewModel converts a loaded DashboardView to its view model.
func toDashboardViewModel(v application.DashboardView) vm.DashboardViewModel {
	count, version := toMetricsFragments(v.Metrics)
	return vm.DashboardViewModel{
		Count:     count,
		Version:   version,
		Changelog: toChangelogFragment(v.Changelog),
	}
}

// toMetricsFragments maps the metrics half of the view to the count and
// version fragments.
func toMetricsFragments(m application.MetricsView) (count, version vm.Fragment) {
	if m.CountErr != nil {
		count = vm.Fragment{HTML: countUnavailableHTML}
	} else {
		count = vm.Fragment{Text: strconv.Itoa(m.RecordCount)}
	}

	if m.VersionErr != nil {
		version = vm.Fragment{Text: VersionUnavailableText}
	} else {
		version = vm.Fragment{Text: m.Version}
	}

	return count, version
}

// toChangelogFragment maps the changelog half of the view. An error always
// produces the error message so a previous value is never left in place.
func toChangelogFragment(c application.ChangelogView) vm.Fragment {
	switch {
	case c.Err != nil:
		return vm.Fragment{HTML: changelogErrorHTML}
	case c.HTML != "":
		return vm.Fragment{HTML: c.HTML}
	default:
		return vm.Fragment{Text: c.Text}
	}
}
