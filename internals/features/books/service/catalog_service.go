package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	helper "bookbridge_backend/internals/helpers"
)

// CatalogVolume is the normalized shape pulled from either external
// catalog. Both catalogs are read-only, best-effort collaborators: a
// failure here degrades to manual entry, never a hard failure upstream.
type CatalogVolume struct {
	Title       string
	Author      string
	Genre       string
	Description string
	ISBN        string
	Image       string
	Price       float64
}

const (
	googleBooksBaseURL = "https://www.googleapis.com/books/v1/volumes"
	openLibraryBaseURL = "https://openlibrary.org"
)

var catalogClient = &http.Client{Timeout: 5 * time.Second}

/* ===============================
   Google Books
=================================*/

type googleVolumeResponse struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	VolumeInfo struct {
		Title               string   `json:"title"`
		Authors             []string `json:"authors"`
		Categories          []string `json:"categories"`
		Description         string   `json:"description"`
		IndustryIdentifiers []struct {
			Type       string `json:"type"`
			Identifier string `json:"identifier"`
		} `json:"industryIdentifiers"`
		ImageLinks struct {
			Thumbnail string `json:"thumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
	SaleInfo struct {
		ListPrice struct {
			Amount float64 `json:"amount"`
		} `json:"listPrice"`
		RetailPrice struct {
			Amount float64 `json:"amount"`
		} `json:"retailPrice"`
	} `json:"saleInfo"`
}

// FetchGoogleVolume pulls one volume by its Google Books id.
func FetchGoogleVolume(ctx context.Context, googleBooksID string) (*CatalogVolume, error) {
	endpoint := googleBooksBaseURL + "/" + url.PathEscape(googleBooksID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := catalogClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google books request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("volume %s not found", googleBooksID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google books returned status %d", resp.StatusCode)
	}

	var data googleVolumeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode google books response: %w", err)
	}
	if data.Error != nil {
		return nil, fmt.Errorf("google books error: %s", data.Error.Message)
	}
	if data.VolumeInfo.Title == "" {
		return nil, fmt.Errorf("volume %s has no metadata", googleBooksID)
	}

	vol := &CatalogVolume{
		Title:       data.VolumeInfo.Title,
		Author:      "Unknown Author",
		Genre:       "Uncategorized",
		Description: "No description available",
		Image:       helper.NormalizeImageURL(data.VolumeInfo.ImageLinks.Thumbnail),
	}
	if len(data.VolumeInfo.Authors) > 0 {
		vol.Author = data.VolumeInfo.Authors[0]
	}
	if len(data.VolumeInfo.Categories) > 0 {
		vol.Genre = data.VolumeInfo.Categories[0]
	}
	if data.VolumeInfo.Description != "" {
		vol.Description = data.VolumeInfo.Description
	}
	if len(data.VolumeInfo.IndustryIdentifiers) > 0 {
		vol.ISBN = data.VolumeInfo.IndustryIdentifiers[0].Identifier
	}
	if data.SaleInfo.ListPrice.Amount > 0 {
		vol.Price = data.SaleInfo.ListPrice.Amount
	} else if data.SaleInfo.RetailPrice.Amount > 0 {
		vol.Price = data.SaleInfo.RetailPrice.Amount
	}
	return vol, nil
}

/* ===============================
   OpenLibrary (ISBN fallback)
=================================*/

type openLibraryBook struct {
	Title   string `json:"title"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Subjects []struct {
		Name string `json:"name"`
	} `json:"subjects"`
	Cover struct {
		Medium string `json:"medium"`
	} `json:"cover"`
}

// LookupISBN queries OpenLibrary for bibliographic data by ISBN. Used to
// prefill manual book entry; callers treat any error as "no data".
func LookupISBN(ctx context.Context, isbn string) (*CatalogVolume, error) {
	endpoint := fmt.Sprintf("%s/api/books?bibkeys=ISBN:%s&format=json&jscmd=data", openLibraryBaseURL, url.QueryEscape(isbn))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := catalogClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openlibrary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openlibrary returned status %d", resp.StatusCode)
	}

	var payload map[string]openLibraryBook
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode openlibrary response: %w", err)
	}
	entry, ok := payload["ISBN:"+isbn]
	if !ok || entry.Title == "" {
		return nil, fmt.Errorf("isbn %s not found", isbn)
	}

	vol := &CatalogVolume{
		Title:  entry.Title,
		Author: "Unknown Author",
		Genre:  "Uncategorized",
		ISBN:   isbn,
		Image:  helper.NormalizeImageURL(entry.Cover.Medium),
	}
	if len(entry.Authors) > 0 {
		vol.Author = entry.Authors[0].Name
	}
	if len(entry.Subjects) > 0 {
		vol.Genre = entry.Subjects[0].Name
	}
	return vol, nil
}
