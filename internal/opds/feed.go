// Package opds renders catalog query results as OPDS 1.x acquisition feeds for e-reader apps.
package opds

import (
	"encoding/xml"
	"fmt"
	"mime"
	"net/url"
	"path"
	"strconv"

	"github.com/opds-community/libopds2-go/opds1"

	"storefront/internal/types"
)

const (
	ContentType = "application/atom+xml;profile=opds-catalog;kind=acquisition"

	linkTypeCatalog = "application/atom+xml;profile=opds-catalog"
	linkTypeHtml    = "text/html"
	linkRelImage    = "http://opds-spec.org/image"
	linkRelThumb    = "http://opds-spec.org/image/thumbnail"
	linkRelSelf     = "self"
	linkRelStart    = "start"
	linkRelAlt      = "alternate"

	bookIdTemplate = "tag:book:%v"
)

type atomFeed struct {
	XMLName xml.Name `xml:"http://www.w3.org/2005/Atom feed"`
	opds1.Feed
}

// Builder knows where the storefront lives so feeds can link back to it.
type Builder struct {
	// BaseUrl of the storefront web pages, book pages are BaseUrl/books/{id}
	BaseUrl *url.URL
	// FeedPath is the path the feed itself is served on
	FeedPath string
}

func (b *Builder) Feed(title string, self *url.URL, books []types.Book) opds1.Feed {
	feed := opds1.Feed{
		ID:      "tag:storefront:" + self.RequestURI(),
		Title:   title,
		Entries: make([]opds1.Entry, 0, len(books)),
		Links: []opds1.Link{
			{Rel: linkRelSelf, Href: self.RequestURI(), TypeLink: linkTypeCatalog},
			{Rel: linkRelStart, Href: b.FeedPath, TypeLink: linkTypeCatalog},
		},
	}

	for ix := range books {
		feed.Entries = append(feed.Entries, b.entry(&books[ix]))
	}

	return feed
}

func (b *Builder) entry(book *types.Book) opds1.Entry {
	e := opds1.Entry{
		Title:    book.Title,
		ID:       fmt.Sprintf(bookIdTemplate, book.Id),
		Language: "en",
		Author:   []opds1.Author{{Name: book.Author}},
		Category: []opds1.Category{{Term: book.Category}},
		Links: []opds1.Link{
			{Rel: linkRelAlt, Href: b.PageUrl(book.Id), TypeLink: linkTypeHtml},
		},
	}

	e.Content.Content = book.Description

	if book.Image != "" {
		imageType := mime.TypeByExtension(path.Ext(imagePath(book.Image)))
		if imageType == "" {
			imageType = "image/jpeg"
		}

		e.Links = append(e.Links,
			opds1.Link{Rel: linkRelImage, Href: book.Image, TypeLink: imageType},
			opds1.Link{Rel: linkRelThumb, Href: book.Image, TypeLink: imageType},
		)
	}

	return e
}

// PageUrl is the storefront web page of a book
func (b *Builder) PageUrl(id string) string {
	if b.BaseUrl == nil {
		return "/books/" + url.PathEscape(id)
	}

	return b.BaseUrl.JoinPath("books", id).String()
}

func imagePath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	return u.Path
}

// Marshal encodes feed as an Atom document with the XML header
func Marshal(feed opds1.Feed) ([]byte, error) {
	bs, err := xml.MarshalIndent(atomFeed{Feed: feed}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling opds feed: %w", err)
	}

	return append([]byte(xml.Header), bs...), nil
}

// Count is a helper for feed titles: "3 books"
func Count(n int) string {
	if n == 1 {
		return "1 book"
	}

	return strconv.Itoa(n) + " books"
}
