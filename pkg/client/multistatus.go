package client

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/simpledav/simpledav/internal/davpath"
	"github.com/simpledav/simpledav/pkg/types"
)

// Wire structures for the PROPFIND 207 body. Only the properties the
// client consumes are mapped: href, resourcetype/collection and
// getcontentlength.
type multistatus struct {
	XMLName   xml.Name      `xml:"DAV: multistatus"`
	Responses []davResponse `xml:"DAV: response"`
}

type davResponse struct {
	Href      string     `xml:"DAV: href"`
	Propstats []propstat `xml:"DAV: propstat"`
}

type propstat struct {
	Prop davProp `xml:"DAV: prop"`
}

type davProp struct {
	ResourceType  resourceType `xml:"DAV: resourcetype"`
	ContentLength string       `xml:"DAV: getcontentlength"`
}

type resourceType struct {
	Collection *struct{} `xml:"DAV: collection"`
}

// parseMultistatus decodes a 207 multistatus body into directory entries,
// one per response element, in document order.
func parseMultistatus(r io.Reader) ([]types.DirectoryEntry, error) {
	var ms multistatus
	if err := xml.NewDecoder(r).Decode(&ms); err != nil {
		return nil, fmt.Errorf("decode multistatus: %w", err)
	}

	entries := make([]types.DirectoryEntry, 0, len(ms.Responses))
	for _, resp := range ms.Responses {
		if resp.Href == "" {
			continue
		}
		path, err := davpath.ParseHref(resp.Href)
		if err != nil {
			return nil, fmt.Errorf("decode multistatus: %w", err)
		}

		entry := types.DirectoryEntry{
			Path: path,
			Name: path.Base(),
			Kind: types.KindFile,
		}
		for _, ps := range resp.Propstats {
			if ps.Prop.ResourceType.Collection != nil {
				entry.Kind = types.KindDirectory
			}
			if ps.Prop.ContentLength != "" {
				if n, err := strconv.ParseInt(ps.Prop.ContentLength, 10, 64); err == nil {
					entry.Size = n
				}
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
