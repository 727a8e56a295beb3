package query

import "github.com/zainulsyai/eko-hajj/internal/monitoring"

// PortalItem is one data-entry tile.
type PortalItem struct {
	Kind monitoring.Kind `json:"kind"`
	monitoring.PortalCard
	Color      string `json:"color"`
	Icon       string `json:"icon"`
	TargetPage string `json:"targetPage"`
}

var portalTargets = map[monitoring.Kind]monitoring.Collection{
	monitoring.KindSpice:      monitoring.CollectionSpiceMakkah,
	monitoring.KindRice:       monitoring.CollectionRice,
	monitoring.KindRTE:        monitoring.CollectionRTE,
	monitoring.KindTenant:     monitoring.CollectionTenant,
	monitoring.KindExpedition: monitoring.CollectionExpedition,
	monitoring.KindTelecom:    monitoring.CollectionTelecom,
}

// PortalItems returns the six entry tiles in display order.
func PortalItems() []PortalItem {
	items := make([]PortalItem, 0, len(monitoring.Kinds()))
	for _, k := range monitoring.Kinds() {
		d := monitoring.Describe(k)
		items = append(items, PortalItem{
			Kind:       k,
			PortalCard: d.Portal,
			Color:      d.Color,
			Icon:       d.Icon,
			TargetPage: FormPath(portalTargets[k]),
		})
	}
	return items
}
