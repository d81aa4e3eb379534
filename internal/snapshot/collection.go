// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package snapshot

// collectionDoc mirrors the parts of xmlapi2/collection that are imported.
type collectionDoc struct {
	Items []collectionItem `xml:"item"`
}

type collectionItem struct {
	ObjectID      string       `xml:"objectid,attr"`
	Name          *string      `xml:"name"`
	YearPublished *string      `xml:"yearpublished"`
	Image         *string      `xml:"image"`
	Thumbnail     *string      `xml:"thumbnail"`
	Stats         *itemStats   `xml:"stats"`
	PrivateInfo   *privateInfo `xml:"privateinfo"`
}

type itemStats struct {
	MinPlayers  string `xml:"minplayers,attr"`
	MaxPlayers  string `xml:"maxplayers,attr"`
	MinPlaytime string `xml:"minplaytime,attr"`
	MaxPlaytime string `xml:"maxplaytime,attr"`
	PlayingTime string `xml:"playingtime,attr"`
	Average     *struct {
		Value string `xml:"value,attr"`
	} `xml:"rating>average"`
}

type privateInfo struct {
	Quantity          string  `xml:"quantity,attr"`
	AcquiredFrom      string  `xml:"acquiredfrom,attr"`
	InventoryLocation string  `xml:"inventorylocation,attr"`
	PrivateComment    *string `xml:"privatecomment"`
}
