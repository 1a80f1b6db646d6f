// Package shell is the top-level application controller: it wires the
// session manager and activity log to page navigation and decides between
// the public and authenticated page sets.
package shell

// Page identifies one view of the application.
type Page string

const (
	PageHome                 Page = "home"
	PageAbout                Page = "about"
	PageContact              Page = "contact"
	PageExplore              Page = "explore"
	PageWelcome              Page = "welcome"
	PageImageAnalysis        Page = "image-analysis"
	PageCheckup              Page = "checkup"
	PagePrescriptionAnalysis Page = "prescription-analysis"
	PageMentalHealth         Page = "mental-health"
	PageSymptomChecker       Page = "symptom-checker"
	PageHealthBriefing       Page = "health-briefing"
	PageActivityHistory      Page = "activity-history"
	PageAdminDashboard       Page = "admin-dashboard"
	PageProfile              Page = "profile"
	PageLiveAlerts           Page = "live-alerts"
)
