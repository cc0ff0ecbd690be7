package capscope

import (
	"maps"
	"slices"
)

// UnknownSector is the sector of companies the provider did not classify.
const UnknownSector = "Unknown"

// unclassified is the localized label of any sector missing from sectorsCN.
const unclassified = "未分类"

// sectorsCN maps provider sector labels to their Chinese display name.
//
// Providers disagree on naming (Yahoo uses "Consumer Cyclical" where GICS says
// "Consumer Discretionary"), both spellings are listed.
var sectorsCN = map[string]string{
	"Technology":             "信息技术",
	"Healthcare":             "医疗保健",
	"Financials":             "金融",
	"Consumer Cyclical":      "非必需消费品",
	"Consumer Discretionary": "非必需消费品",
	"Consumer Defensive":     "必需消费品",
	"Consumer Staples":       "必需消费品",
	"Communication Services": "通信服务",
	"Industrials":            "工业",
	"Energy":                 "能源",
	"Utilities":              "公用事业",
	"Real Estate":            "房地产",
	"Basic Materials":        "原材料",
	"Materials":              "原材料",
	UnknownSector:            unclassified,
}

// LocalizeSector returns the Chinese display name of a sector.
func LocalizeSector(sector string) string {
	if cn, ok := sectorsCN[sector]; ok {
		return cn
	}
	return unclassified
}

// KnownSectors returns the sector labels that have a localized name, sorted.
func KnownSectors() []string {
	return slices.Sorted(maps.Keys(sectorsCN))
}
