package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmops/lmctl/pkg/types"
)

func TestDeviceAddResolvesCollectorAndGroups(t *testing.T) {
	p := newPortal(t)
	p.route("GET", "/device/devices", emptyList())
	p.route("GET", "/setting/collector/collectors", listOf(map[string]any{"id": 3, "description": "col-1"}))
	p.route("GET", "/device/groups", listOf(map[string]any{"id": 11, "fullPath": "Prod/Web"}))
	p.route("POST", "/device/devices", map[string]any{"id": 5, "name": "web-1.example.com", "displayName": "web-1"})

	spec := &DeviceSpec{
		Hostname:      strPtr("web-1.example.com"),
		DisplayName:   strPtr("web-1"),
		CollectorDesc: strPtr("col-1"),
		Groups:        []string{"/Prod/Web", "12"},
	}
	res, err := p.engine.Apply(context.Background(), types.ActionAdd, spec)
	require.NoError(t, err)

	assert.Equal(t, "web-1", res.Data.String("display_name"))

	body := p.bodies["POST /device/devices"]
	assert.Equal(t, "web-1.example.com", body["name"])
	assert.Equal(t, float64(3), body["preferredCollectorId"])
	assert.Equal(t, "11,12", body["hostGroupIds"])
}

func TestDeviceAutoBalanceJoinsGroup(t *testing.T) {
	p := newPortal(t)
	p.route("GET", "/device/devices", emptyList())
	p.route("GET", "/setting/collector/groups", listOf(map[string]any{"id": 4, "name": "abcg"}))
	p.route("POST", "/device/devices", map[string]any{"id": 5})

	spec := &DeviceSpec{
		Hostname:           strPtr("web-1.example.com"),
		DisplayName:        strPtr("web-1"),
		AutoBalance:        boolPtr(true),
		CollectorGroupName: strPtr("abcg"),
	}
	_, err := p.engine.Apply(context.Background(), types.ActionAdd, spec)
	require.NoError(t, err)

	body := p.bodies["POST /device/devices"]
	assert.Equal(t, float64(4), body["autoBalancedCollectorGroupId"])
	assert.NotContains(t, body, "preferredCollectorId")
}

func TestDeviceDisableAutoBalanceClearsGroup(t *testing.T) {
	p := newPortal(t)
	p.route("GET", "/device/devices/5", map[string]any{"id": 5, "autoBalancedCollectorGroupId": 4})
	p.route("GET", "/setting/collector/collectors/3", map[string]any{"id": 3})
	p.route("PATCH", "/device/devices/5", map[string]any{"id": 5})

	spec := &DeviceSpec{ID: 5, AutoBalance: boolPtr(false), CollectorID: 3}
	_, err := p.engine.Apply(context.Background(), types.ActionUpdate, spec)
	require.NoError(t, err)

	body := p.bodies["PATCH /device/devices/5"]
	assert.Equal(t, float64(0), body["autoBalancedCollectorGroupId"])
	assert.Equal(t, float64(3), body["preferredCollectorId"])
}

func TestDeviceRefreshesAutoBalancedGroup(t *testing.T) {
	p := newPortal(t)
	p.route("GET", "/device/devices/5", map[string]any{"id": 5, "autoBalancedCollectorGroupId": 4})
	p.route("GET", "/setting/collector/groups", listOf(map[string]any{"id": 9, "name": "abcg-2"}))
	p.route("PATCH", "/device/devices/5", map[string]any{"id": 5})

	spec := &DeviceSpec{ID: 5, CollectorGroupName: strPtr("abcg-2")}
	_, err := p.engine.Apply(context.Background(), types.ActionUpdate, spec)
	require.NoError(t, err)

	assert.Equal(t, float64(9), p.bodies["PATCH /device/devices/5"]["autoBalancedCollectorGroupId"])
}

func TestDeviceEnableAutoBalanceInheritsPreferredGroup(t *testing.T) {
	p := newPortal(t)
	p.route("GET", "/device/devices/5", map[string]any{"id": 5, "preferredCollectorGroupId": 6})
	p.route("PATCH", "/device/devices/5", map[string]any{"id": 5})

	spec := &DeviceSpec{ID: 5, AutoBalance: boolPtr(true)}
	_, err := p.engine.Apply(context.Background(), types.ActionUpdate, spec)
	require.NoError(t, err)

	assert.Equal(t, float64(6), p.bodies["PATCH /device/devices/5"]["autoBalancedCollectorGroupId"])
}

func TestDeviceLookupCombinesNameFilters(t *testing.T) {
	p := newPortal(t)
	p.route("GET", "/device/devices", listOf(map[string]any{"id": 3, "name": "web-1.example.com", "displayName": "migrated"}))
	p.route("PATCH", "/device/devices/3", map[string]any{"id": 3})

	spec := &DeviceSpec{
		DisplayName: strPtr("web-1"),
		Hostname:    strPtr("web-1.example.com"),
		Description: strPtr("moved"),
	}
	_, err := p.engine.Apply(context.Background(), types.ActionUpdate, spec)
	require.NoError(t, err)

	// One query covers both names so the lowest id wins when they match
	// different devices.
	q := p.queries["GET /device/devices"]
	assert.Equal(t, `displayName:"web-1"||name:"web-1.example.com"`, q.Get("filter"))
	assert.Equal(t, "id", q.Get("sort"))
}

func TestDeviceValidateAdd(t *testing.T) {
	tests := []struct {
		name string
		spec DeviceSpec
		want string
	}{
		{
			name: "missing display name",
			spec: DeviceSpec{Hostname: strPtr("h"), CollectorID: 3},
			want: "hostname and display name",
		},
		{
			name: "missing collector",
			spec: DeviceSpec{Hostname: strPtr("h"), DisplayName: strPtr("d")},
			want: "collector id or description",
		},
		{
			name: "auto balance without group",
			spec: DeviceSpec{Hostname: strPtr("h"), DisplayName: strPtr("d"), AutoBalance: boolPtr(true)},
			want: "collector group id or name",
		},
		{
			name: "malformed group path",
			spec: DeviceSpec{
				Hostname: strPtr("h"), DisplayName: strPtr("d"), CollectorID: 3,
				Groups: []string{"/Prod//Web"},
			},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.ValidateAdd()
			require.Error(t, err)
			if tt.want != "" {
				assert.Contains(t, err.Error(), tt.want)
			}
		})
	}
}

func TestCollectorUpdateClearsRelations(t *testing.T) {
	p := newPortal(t)
	p.route("GET", "/setting/collector/collectors/3", map[string]any{"id": 3})
	p.route("PATCH", "/setting/collector/collectors/3", map[string]any{"id": 3})

	spec := &CollectorSpec{ID: 3, EscalatingChainID: intPtr(0), BackupCollectorID: intPtr(0)}
	_, err := p.engine.Apply(context.Background(), types.ActionUpdate, spec)
	require.NoError(t, err)

	body := p.bodies["PATCH /setting/collector/collectors/3"]
	assert.Equal(t, float64(0), body["escalatingChainId"])
	assert.Equal(t, float64(0), body["backupAgentId"])
	// Clearing never triggers a lookup.
	assert.Len(t, p.calls, 2)
}

func TestCollectorUpdateResolvesRelations(t *testing.T) {
	p := newPortal(t)
	p.route("GET", "/setting/collector/collectors/3", map[string]any{"id": 3})
	p.route("GET", "/setting/alert/chains", listOf(map[string]any{"id": 21, "name": "oncall"}))
	p.route("GET", "/setting/collector/collectors", listOf(map[string]any{"id": 8, "description": "backup"}))
	p.route("PATCH", "/setting/collector/collectors/3", map[string]any{"id": 3})

	spec := &CollectorSpec{
		ID:                  3,
		EscalatingChainName: strPtr("oncall"),
		BackupCollectorDesc: strPtr("backup"),
		ResendInterval:      intPtr(15),
	}
	_, err := p.engine.Apply(context.Background(), types.ActionUpdate, spec)
	require.NoError(t, err)

	body := p.bodies["PATCH /setting/collector/collectors/3"]
	assert.Equal(t, float64(21), body["escalatingChainId"])
	assert.Equal(t, float64(8), body["backupAgentId"])
	assert.Equal(t, float64(15), body["resendIval"])
}

func TestCollectorCreateRegistersWithGroup(t *testing.T) {
	p := newPortal(t)
	p.route("GET", "/setting/collector/collectors", emptyList())
	p.route("GET", "/setting/collector/groups", listOf(map[string]any{"id": 4, "name": "edge"}))
	p.route("POST", "/setting/collector/collectors", map[string]any{"id": 9, "description": "col-9"})

	spec := &CollectorSpec{Description: strPtr("col-9"), CollectorGroupName: strPtr("edge")}
	_, err := p.engine.Apply(context.Background(), types.ActionAdd, spec)
	require.NoError(t, err)

	body := p.bodies["POST /setting/collector/collectors"]
	assert.Equal(t, "col-9", body["description"])
	assert.Equal(t, float64(4), body["collectorGroupId"])
	assert.Equal(t, "3", p.headers["POST /setting/collector/collectors"].Get("X-Version"))
}

func TestLMOtelCollectorUsesVersionFour(t *testing.T) {
	p := newPortal(t)
	p.route("GET", "/setting/collector/collectors", emptyList())
	p.route("POST", "/setting/collector/collectors", map[string]any{"id": 9})

	spec := &CollectorSpec{Description: strPtr("otel-1"), LMOtel: true}
	_, err := p.engine.Apply(context.Background(), types.ActionAdd, spec)
	require.NoError(t, err)

	assert.Equal(t, "4", p.headers["POST /setting/collector/collectors"].Get("X-Version"))
}

func TestEscalationChainResolvesRecipients(t *testing.T) {
	p := newPortal(t)
	p.route("GET", "/setting/alert/chains", emptyList())
	p.route("GET", "/setting/recipients", listOf(map[string]any{
		"id": 2, "type": "ADMIN", "method": "email", "addr": "jane@example.com",
	}))
	p.route("POST", "/setting/alert/chains", map[string]any{"id": 6, "name": "oncall"})

	spec := &EscalationChainSpec{
		Name:             strPtr("oncall"),
		EnableThrottling: boolPtr(false),
		Destinations: [][]Recipient{{
			{Name: "arbitrary-email", Address: "ops@example.com"},
			{Name: "email", User: "jane@example.com"},
		}},
	}
	_, err := p.engine.Apply(context.Background(), types.ActionAdd, spec)
	require.NoError(t, err)

	assert.Equal(t, `method:"email",addr:"jane@example.com"`, p.queries["GET /setting/recipients"].Get("filter"))

	body := p.bodies["POST /setting/alert/chains"]
	dests, ok := body["destinations"].([]any)
	require.True(t, ok)
	require.Len(t, dests, 1)
	dest := dests[0].(map[string]any)
	assert.Equal(t, "single", dest["type"])

	stages := dest["stages"].([]any)
	require.Len(t, stages, 1)
	stage := stages[0].([]any)
	require.Len(t, stage, 2)

	arbitrary := stage[0].(map[string]any)
	assert.Equal(t, "ARBITRARY", arbitrary["type"])
	assert.Equal(t, "ops@example.com", arbitrary["addr"])
	assert.Equal(t, "", arbitrary["contact"])

	looked := stage[1].(map[string]any)
	assert.Equal(t, float64(2), looked["id"])
	assert.Equal(t, "", looked["contact"])
}

func TestEscalationChainGroupRecipientMatchesByAddr(t *testing.T) {
	p := newPortal(t)
	p.route("GET", "/setting/alert/chains", emptyList())
	p.route("GET", "/setting/recipients", listOf(map[string]any{"id": 3, "type": "GROUP", "addr": "oncall-group"}))
	p.route("POST", "/setting/alert/chains", map[string]any{"id": 6})

	spec := &EscalationChainSpec{
		Name:             strPtr("oncall"),
		EnableThrottling: boolPtr(false),
		Destinations:     [][]Recipient{{{Name: "group", GroupName: "oncall-group"}}},
	}
	_, err := p.engine.Apply(context.Background(), types.ActionAdd, spec)
	require.NoError(t, err)

	assert.Equal(t, `addr:"oncall-group"`, p.queries["GET /setting/recipients"].Get("filter"))
}

func TestEscalationChainMissingRecipientFails(t *testing.T) {
	p := newPortal(t)
	p.route("GET", "/setting/alert/chains", emptyList())
	p.route("GET", "/setting/recipients", emptyList())

	spec := &EscalationChainSpec{
		Name:             strPtr("oncall"),
		EnableThrottling: boolPtr(false),
		Destinations:     [][]Recipient{{{Name: "email", User: "nobody@example.com"}}},
	}
	_, err := p.engine.Apply(context.Background(), types.ActionAdd, spec)
	require.ErrorIs(t, err, ErrAbsent)
}

func TestEscalationChainThrottlingValidation(t *testing.T) {
	spec := &EscalationChainSpec{
		Name:             strPtr("oncall"),
		EnableThrottling: boolPtr(true),
		Destinations:     [][]Recipient{{{Name: "arbitrary-email", Address: "a@b.c"}}},
	}
	err := spec.ValidateAdd()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit alerts")

	spec.RateLimitAlerts = intPtr(10)
	err = spec.ValidateAdd()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit period")

	spec.RateLimitPeriod = intPtr(5)
	assert.NoError(t, spec.ValidateAdd())
}

func TestAlertRulePayloadPassesSelectorsThrough(t *testing.T) {
	spec := &AlertRuleSpec{
		Name:               strPtr("db errors"),
		Priority:           intPtr(100),
		Level:              strPtr("Error"),
		Datasource:         strPtr("MySQL-"),
		Groups:             []string{"/Prod/DB*"},
		SuppressClear:      boolPtr(true),
		EscalationChainID:  intPtr(21),
		EscalationInterval: intPtr(15),
		Properties:         map[string]any{"tier": "db"},
	}
	data, err := spec.Payload(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Error", data["levelStr"])
	assert.Equal(t, []string{"/Prod/DB*"}, data["deviceGroups"])
	assert.Equal(t, true, data["suppressAlertClear"])
	assert.Equal(t, 21, data["escalatingChainId"])
	assert.NotContains(t, data, "devices")
	assert.NotContains(t, data, "datapoint")
}

func TestOpsNotePayloadShapes(t *testing.T) {
	spec := &OpsNoteSpec{
		Note:      strPtr("deployed v2"),
		Tags:      []string{" release ", "v2"},
		ScopeType: ScopeDevice,
		Scopes:    []string{" 12 "},
		NoteTime:  "2026-08-28 10:00",
	}
	data, err := spec.Payload(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []map[string]any{{"name": "release"}, {"name": "v2"}}, data["tags"])
	assert.Equal(t, []map[string]any{{"type": "device", "groupId": "0", "deviceId": "12"}}, data["scopes"])

	want := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local).UnixMilli()
	assert.Equal(t, want, data["happenedOnInSec"])
}

func TestOpsNoteScopeShapes(t *testing.T) {
	group := &OpsNoteSpec{Note: strPtr("n"), ScopeType: ScopeDeviceGroup, Scopes: []string{"7"}}
	data, err := group.Payload(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{"type": "deviceGroup", "groupId": "7"}}, data["scopes"])

	site := &OpsNoteSpec{Note: strPtr("n"), ScopeType: ScopeWebsite, Scopes: []string{"31"}}
	data, err = site.Payload(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{"type": "website", "groupId": "0", "websiteId": "31"}}, data["scopes"])

	bad := &OpsNoteSpec{Note: strPtr("n"), ScopeType: "collector", Scopes: []string{"1"}}
	_, err = bad.Payload(context.Background(), nil, nil)
	require.Error(t, err)
}

func TestOpsNoteUpdateRequiresID(t *testing.T) {
	p := newPortal(t)

	spec := &OpsNoteSpec{Note: strPtr("deployed v2")}
	_, err := p.engine.Apply(context.Background(), types.ActionUpdate, spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires an existing id")
	assert.Empty(t, p.calls)
}

func TestOpsNoteUpdateAddressesStringID(t *testing.T) {
	p := newPortal(t)
	p.route("GET", "/setting/opsnotes/dBL0FcGrQvKCybFKnzxnrg",
		map[string]any{"id": "dBL0FcGrQvKCybFKnzxnrg", "note": "deployed v1"})
	p.route("PATCH", "/setting/opsnotes/dBL0FcGrQvKCybFKnzxnrg",
		map[string]any{"id": "dBL0FcGrQvKCybFKnzxnrg", "note": "deployed v2"})

	spec := &OpsNoteSpec{ID: "dBL0FcGrQvKCybFKnzxnrg", Note: strPtr("deployed v2")}
	res, err := p.engine.Apply(context.Background(), types.ActionUpdate, spec)
	require.NoError(t, err)

	assert.Equal(t, "update", res.ActionPerformed)
	assert.Contains(t, p.calls, "PATCH /setting/opsnotes/dBL0FcGrQvKCybFKnzxnrg")
}

func TestOpsNoteRemoveAddressesStringID(t *testing.T) {
	p := newPortal(t)
	p.route("GET", "/setting/opsnotes/dBL0FcGrQvKCybFKnzxnrg",
		map[string]any{"id": "dBL0FcGrQvKCybFKnzxnrg", "note": "deployed v1"})
	p.route("DELETE", "/setting/opsnotes/dBL0FcGrQvKCybFKnzxnrg", map[string]any{})

	spec := &OpsNoteSpec{ID: "dBL0FcGrQvKCybFKnzxnrg"}
	res, err := p.engine.Apply(context.Background(), types.ActionRemove, spec)
	require.NoError(t, err)

	assert.Equal(t, "remove", res.ActionPerformed)
	assert.Contains(t, p.calls, "DELETE /setting/opsnotes/dBL0FcGrQvKCybFKnzxnrg")
}

func TestWebsiteDowntimeWholeCheckByName(t *testing.T) {
	p := newPortal(t)
	p.route("GET", "/website/websites", listOf(map[string]any{"id": 31, "name": "shop"}))
	p.route("POST", "/sdt/sdts", map[string]any{"id": "S_4", "duration": 30})

	spec := &WebsiteCheckSpec{Name: "shop"}
	res, err := p.engine.Apply(context.Background(), types.ActionSDT, spec)
	require.NoError(t, err)
	assert.Equal(t, "S_4", res.Data["sdt_id"])

	body := p.bodies["POST /sdt/sdts"]
	assert.Equal(t, "WebsiteSDT", body["type"])
	assert.Equal(t, "shop", body["websiteName"])
	assert.NotContains(t, body, "checkpointId")
}

func TestWebsiteDowntimeCheckpointByLocation(t *testing.T) {
	p := newPortal(t)
	p.route("GET", "/website/websites/31", map[string]any{
		"id": 31, "name": "shop",
		"checkpoints": []any{
			map[string]any{"id": 101, "geoInfo": "Europe - Dublin"},
			map[string]any{"id": 102, "geoInfo": "US - Oregon"},
		},
	})
	p.route("POST", "/sdt/sdts", map[string]any{"id": "S_5"})

	spec := &WebsiteCheckSpec{ID: 31, CheckpointName: "US - Oregon"}
	_, err := p.engine.Apply(context.Background(), types.ActionSDT, spec)
	require.NoError(t, err)

	body := p.bodies["POST /sdt/sdts"]
	assert.Equal(t, "WebsiteCheckpointSDT", body["type"])
	assert.Equal(t, float64(102), body["checkpointId"])
	assert.Equal(t, float64(31), body["websiteId"])
}

func TestWebsiteDowntimeUnknownCheckpoint(t *testing.T) {
	p := newPortal(t)
	p.route("GET", "/website/websites/31", map[string]any{
		"id": 31, "name": "shop",
		"checkpoints": []any{map[string]any{"id": 101, "geoInfo": "Europe - Dublin"}},
	})

	spec := &WebsiteCheckSpec{ID: 31, CheckpointID: 999}
	_, err := p.engine.Apply(context.Background(), types.ActionSDT, spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available checkpoints")
	assert.Contains(t, err.Error(), "Europe - Dublin")
}

func TestWebsiteCheckRejectsManagement(t *testing.T) {
	p := newPortal(t)
	p.route("GET", "/website/websites", emptyList())

	spec := &WebsiteCheckSpec{Name: "shop"}
	_, err := p.engine.Apply(context.Background(), types.ActionAdd, spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only support scheduled downtime")
}

func TestDeviceGroupAddCreatesParents(t *testing.T) {
	p := newPortal(t)
	p.route("GET", "/device/groups", emptyList())
	p.route("POST", "/device/groups", map[string]any{"id": 40, "name": "Frontend", "fullPath": "Prod/Frontend"})

	spec := &DeviceGroupSpec{FullPath: strPtr("/Prod/Frontend")}
	_, err := p.engine.Apply(context.Background(), types.ActionAdd, spec)
	require.NoError(t, err)

	// The lookup and the parent walk both miss, so Prod is created first
	// and the leaf is parented to whatever id the server assigned it.
	body := p.bodies["POST /device/groups"]
	assert.Equal(t, "Frontend", body["name"])
	assert.Equal(t, float64(40), body["parentId"])
}

func TestDeviceGroupDowntimeNarrowsToDatasource(t *testing.T) {
	p := newPortal(t)
	p.route("GET", "/device/groups/11", map[string]any{"id": 11, "fullPath": "Prod/Web"})
	p.route("POST", "/sdt/sdts", map[string]any{"id": "S_6"})

	spec := &DeviceGroupSpec{ID: 11, DatasourceName: strPtr("Ping")}
	_, err := p.engine.Apply(context.Background(), types.ActionSDT, spec)
	require.NoError(t, err)

	body := p.bodies["POST /sdt/sdts"]
	assert.Equal(t, "ResourceGroupSDT", body["type"])
	assert.Equal(t, float64(11), body["deviceGroupId"])
	assert.Equal(t, "Ping", body["dataSourceName"])
}
