// Package nl80211 contains the attribute policies used to decode nl80211
// wiphy dumps.
//
// The tables are built once at package initialization and must be treated
// as read-only.
package nl80211

import (
	"github.com/mdlayher/wiphy/nlattr"
	"golang.org/x/sys/unix"
)

// Fixed payload sizes of the HT and VHT MCS sets, from
// struct ieee80211_mcs_info and struct ieee80211_vht_mcs_info.
const (
	htMCSSetLen  = 16
	vhtMCSSetLen = 8
)

// BitratePolicy describes the attributes of a single band bitrate.
var BitratePolicy = nlattr.NewTable(unix.NL80211_BITRATE_ATTR_MAX, map[uint16]nlattr.Policy{
	unix.NL80211_BITRATE_ATTR_RATE:               {Type: nlattr.U32},
	unix.NL80211_BITRATE_ATTR_2GHZ_SHORTPREAMBLE: {Type: nlattr.Flag},
})

// FrequencyPolicy describes the attributes of a single band frequency.
var FrequencyPolicy = nlattr.NewTable(unix.NL80211_FREQUENCY_ATTR_MAX, map[uint16]nlattr.Policy{
	unix.NL80211_FREQUENCY_ATTR_FREQ:          {Type: nlattr.U32},
	unix.NL80211_FREQUENCY_ATTR_DISABLED:      {Type: nlattr.Flag},
	unix.NL80211_FREQUENCY_ATTR_NO_IR:         {Type: nlattr.Flag},
	unix.NL80211_FREQUENCY_ATTR_RADAR:         {Type: nlattr.Flag},
	unix.NL80211_FREQUENCY_ATTR_MAX_TX_POWER:  {Type: nlattr.U32},
	unix.NL80211_FREQUENCY_ATTR_NO_HT40_MINUS: {Type: nlattr.Flag},
	unix.NL80211_FREQUENCY_ATTR_NO_HT40_PLUS:  {Type: nlattr.Flag},
	unix.NL80211_FREQUENCY_ATTR_NO_80MHZ:      {Type: nlattr.Flag},
	unix.NL80211_FREQUENCY_ATTR_NO_160MHZ:     {Type: nlattr.Flag},
	unix.NL80211_FREQUENCY_ATTR_DFS_STATE:     {Type: nlattr.U32},
	unix.NL80211_FREQUENCY_ATTR_DFS_TIME:      {Type: nlattr.U32},
})

// BandPolicy describes the attributes of a single wiphy band.
var BandPolicy = nlattr.NewTable(unix.NL80211_BAND_ATTR_MAX, map[uint16]nlattr.Policy{
	unix.NL80211_BAND_ATTR_FREQS:            {Type: nlattr.Nested},
	unix.NL80211_BAND_ATTR_RATES:            {Type: nlattr.Nested},
	unix.NL80211_BAND_ATTR_HT_MCS_SET:       {Type: nlattr.Unspec, MinLen: htMCSSetLen, MaxLen: htMCSSetLen},
	unix.NL80211_BAND_ATTR_HT_CAPA:          {Type: nlattr.U16},
	unix.NL80211_BAND_ATTR_HT_AMPDU_FACTOR:  {Type: nlattr.U8},
	unix.NL80211_BAND_ATTR_HT_AMPDU_DENSITY: {Type: nlattr.U8},
	unix.NL80211_BAND_ATTR_VHT_MCS_SET:      {Type: nlattr.Unspec, MinLen: vhtMCSSetLen, MaxLen: vhtMCSSetLen},
	unix.NL80211_BAND_ATTR_VHT_CAPA:         {Type: nlattr.U32},
})

// PHYPolicy describes the top level attributes of a wiphy message.
var PHYPolicy = nlattr.NewTable(unix.NL80211_ATTR_MAX, map[uint16]nlattr.Policy{
	unix.NL80211_ATTR_WIPHY:                  {Type: nlattr.U32},
	unix.NL80211_ATTR_WIPHY_NAME:             {Type: nlattr.String, MaxLen: unix.IFNAMSIZ},
	unix.NL80211_ATTR_WIPHY_BANDS:            {Type: nlattr.Nested},
	unix.NL80211_ATTR_GENERATION:             {Type: nlattr.U32},
	unix.NL80211_ATTR_WIPHY_RETRY_SHORT:      {Type: nlattr.U8},
	unix.NL80211_ATTR_WIPHY_RETRY_LONG:       {Type: nlattr.U8},
	unix.NL80211_ATTR_WIPHY_FRAG_THRESHOLD:   {Type: nlattr.U32},
	unix.NL80211_ATTR_WIPHY_RTS_THRESHOLD:    {Type: nlattr.U32},
	unix.NL80211_ATTR_WIPHY_COVERAGE_CLASS:   {Type: nlattr.U8},
	unix.NL80211_ATTR_MAX_NUM_SCAN_SSIDS:     {Type: nlattr.U8},
	unix.NL80211_ATTR_SUPPORTED_IFTYPES:      {Type: nlattr.Nested},
	unix.NL80211_ATTR_CIPHER_SUITES:          {Type: nlattr.Binary},
	unix.NL80211_ATTR_WIPHY_ANTENNA_AVAIL_TX: {Type: nlattr.U32},
	unix.NL80211_ATTR_WIPHY_ANTENNA_AVAIL_RX: {Type: nlattr.U32},
	unix.NL80211_ATTR_EXT_FEATURES:           {Type: nlattr.Binary},
	unix.NL80211_ATTR_SPLIT_WIPHY_DUMP:       {Type: nlattr.Flag},
})
