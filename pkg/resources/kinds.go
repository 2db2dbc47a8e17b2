package resources

import (
	"strings"

	"github.com/lmops/lmctl/pkg/api"
)

// SDTPath is the scheduled downtime endpoint shared by every kind.
const SDTPath = "/sdt/sdts"

// Kind describes one resource family: its REST endpoint and how the
// platform words a not-found response for it. The wording differs per
// endpoint and some of it carries server-side typos verbatim.
type Kind struct {
	Name string
	Path string

	notFound func(code int, message string) bool
}

func prefix1404(p string) func(int, string) bool {
	return func(code int, message string) bool {
		return code == 1404 && strings.HasPrefix(message, p)
	}
}

var (
	Collector = Kind{
		Name:     "collector",
		Path:     "/setting/collector/collectors",
		notFound: prefix1404("No such Agent"),
	}

	CollectorGroup = Kind{
		Name:     "collector_group",
		Path:     "/setting/collector/groups",
		notFound: prefix1404("The requested group does not exist"),
	}

	Device = Kind{
		Name:     "device",
		Path:     "/device/devices",
		notFound: prefix1404("Resource not found"),
	}

	DeviceGroup = Kind{
		Name: "device_group",
		Path: "/device/groups",
		notFound: func(code int, message string) bool {
			return code == 1404 && strings.HasSuffix(message, "is not found.")
		},
	}

	EscalationChain = Kind{
		Name:     "escalation_chain",
		Path:     "/setting/alert/chains",
		notFound: prefix1404("No such chain"),
	}

	// The alert rule wording misspells "requested" server side.
	AlertRule = Kind{
		Name:     "alert_rule",
		Path:     "/setting/alert/rules",
		notFound: prefix1404("The requestd alert rule does not exist"),
	}

	Recipient = Kind{
		Name: "recipient",
		Path: "/setting/recipients",
	}

	OpsNote = Kind{
		Name:     "ops_note",
		Path:     "/setting/opsnotes",
		notFound: prefix1404("The requested ops note does not exist"),
	}

	WebsiteCheck = Kind{
		Name:     "website_check",
		Path:     "/website/websites",
		notFound: prefix1404("The requested web check does not exist"),
	}
)

// IsNotFound reports whether err is this kind's not-found response.
func (k Kind) IsNotFound(err error) bool {
	if k.notFound == nil {
		return false
	}
	apiErr, ok := api.AsAPIError(err)
	if !ok {
		return false
	}
	return k.notFound(apiErr.Code, apiErr.Message)
}
