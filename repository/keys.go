package repository

import (
	"strconv"

	"github.com/minff/geodata"
)

// Cache key layout, one namespace per catalog:
//
//	{hrn}::catalog
//	{hrn}::latestVersion
//	{hrn}::{layer}::{version}::partitions
//	{hrn}::{layer}::{handle}::data

func catalogKey(hrn geodata.HRN) string {
	return hrn.String() + "::catalog"
}

func versionKey(hrn geodata.HRN) string {
	return hrn.String() + "::latestVersion"
}

func partitionsKey(hrn geodata.HRN, layerID string, version int64) string {
	return hrn.String() + "::" + layerID + "::" + strconv.FormatInt(version, 10) + "::partitions"
}

func dataKey(hrn geodata.HRN, layerID, dataHandle string) string {
	return hrn.String() + "::" + layerID + "::" + dataHandle + "::data"
}
