// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
)

// Strapi v4 wire shapes: entities are {id, attributes} and relations are
// wrapped in {data: ...}.

type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta struct {
		Pagination *PageMeta `json:"pagination,omitempty"`
	} `json:"meta"`
}

// PageMeta is the pagination block of a collection response.
type PageMeta struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

type timestamps struct {
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	PublishedAt time.Time `json:"publishedAt"`
}

type mediaEntity struct {
	ID         int `json:"id"`
	Attributes struct {
		URL             string `json:"url"`
		AlternativeText string `json:"alternativeText"`
		Mime            string `json:"mime"`
	} `json:"attributes"`
}

type mediaRelation struct {
	Data *mediaEntity `json:"data"`
}

func (m *mediaRelation) url() string {
	if m == nil || m.Data == nil {
		return ""
	}
	return m.Data.Attributes.URL
}

type phaseEntity struct {
	ID         int        `json:"id"`
	Attributes phaseAttrs `json:"attributes"`
}

type phaseAttrs struct {
	Title          string `json:"title"`
	Slug           string `json:"slug"`
	Description    string `json:"description"`
	Order          int    `json:"order"`
	PhaseNumber    int    `json:"phase_number"`
	HeaderVideoURL string `json:"header_video_url"`
	Locale         string `json:"locale"`
	timestamps
	Modules *struct {
		Data []moduleEntity `json:"data"`
	} `json:"modules"`
}

type moduleEntity struct {
	ID         int         `json:"id"`
	Attributes moduleAttrs `json:"attributes"`
}

type moduleAttrs struct {
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Summary       string `json:"summary"`
	VideoURL      string `json:"video_url"`
	SubtitleURLEn string `json:"video_subtitle_url_en"`
	SubtitleURLAr string `json:"video_subtitle_url_ar"`
	KeyTakeaways  string `json:"key_takeaways"`
	Order         int    `json:"order"`
	Locale        string `json:"locale"`
	timestamps
	Phase *struct {
		Data *phaseEntity `json:"data"`
	} `json:"phase"`
	Resources *struct {
		Data []resourceEntity `json:"data"`
	} `json:"resources"`
}

type resourceEntity struct {
	ID         int           `json:"id"`
	Attributes resourceAttrs `json:"attributes"`
}

type resourceAttrs struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	File        *mediaRelation `json:"file"`
	FileURL     string         `json:"file_url"`
	FileType    string         `json:"file_type"`
	FileSize    string         `json:"file_size"`
	Order       int            `json:"order"`
	Locale      string         `json:"locale"`
	timestamps
	Module *struct {
		Data *moduleEntity `json:"data"`
	} `json:"module"`
}

type testimonialEntity struct {
	ID         int `json:"id"`
	Attributes struct {
		Name   string         `json:"name"`
		Quote  string         `json:"quote"`
		Role   string         `json:"role"`
		Photo  *mediaRelation `json:"photo"`
		Order  int            `json:"order"`
		Locale string         `json:"locale"`
	} `json:"attributes"`
}

type settingsEntity struct {
	ID         int `json:"id"`
	Attributes struct {
		SiteTitle         string             `json:"site_title"`
		SiteTitleAr       string             `json:"site_title_ar"`
		HeroHeadline      string             `json:"hero_headline"`
		HeroHeadlineAr    string             `json:"hero_headline_ar"`
		HeroDescription   string             `json:"hero_description"`
		HeroDescriptionAr string             `json:"hero_description_ar"`
		HeroVideoURL      string             `json:"hero_video_url"`
		FooterText        string             `json:"footer_text"`
		FooterTextAr      string             `json:"footer_text_ar"`
		SocialLinks       []model.SocialLink `json:"social_links"`
		Locale            string             `json:"locale"`
	} `json:"attributes"`
}

// decodeData unmarshals the envelope's data member into v.
// A null data member leaves v untouched and reports false.
func decodeData(body []byte, v any) (bool, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return false, fmt.Errorf("decoding CMS envelope: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return false, fmt.Errorf("decoding CMS data: %w", err)
	}
	return true, nil
}

func (e *phaseEntity) toModel() model.Phase {
	a := e.Attributes
	p := model.Phase{
		ID:             e.ID,
		Title:          a.Title,
		Slug:           a.Slug,
		Description:    a.Description,
		Order:          a.Order,
		PhaseNumber:    a.PhaseNumber,
		HeaderVideoURL: a.HeaderVideoURL,
		Locale:         model.Locale(a.Locale),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		PublishedAt:    a.PublishedAt,
		Modules:        []model.Module{},
	}
	if a.Modules != nil {
		ref := p.Ref()
		for i := range a.Modules.Data {
			m := a.Modules.Data[i].toModel()
			m.Phase = ref
			p.Modules = append(p.Modules, m)
		}
	}
	return p
}

func (e *moduleEntity) toModel() model.Module {
	a := e.Attributes
	m := model.Module{
		ID:            e.ID,
		Title:         a.Title,
		Slug:          a.Slug,
		Summary:       a.Summary,
		VideoURL:      a.VideoURL,
		SubtitleURLEn: a.SubtitleURLEn,
		SubtitleURLAr: a.SubtitleURLAr,
		KeyTakeaways:  a.KeyTakeaways,
		Order:         a.Order,
		Locale:        model.Locale(a.Locale),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
		PublishedAt:   a.PublishedAt,
		Resources:     []model.Resource{},
	}
	if a.Phase != nil && a.Phase.Data != nil {
		pa := a.Phase.Data.Attributes
		m.Phase = &model.PhaseRef{ID: a.Phase.Data.ID, Title: pa.Title, Slug: pa.Slug, PhaseNumber: pa.PhaseNumber}
	}
	if a.Resources != nil {
		ref := &model.ModuleRef{ID: m.ID, Title: m.Title, Slug: m.Slug}
		for i := range a.Resources.Data {
			r := a.Resources.Data[i].toModel()
			r.Module = ref
			m.Resources = append(m.Resources, r)
		}
	}
	return m
}

func (e *resourceEntity) toModel() model.Resource {
	a := e.Attributes
	r := model.Resource{
		ID:          e.ID,
		Title:       a.Title,
		Description: a.Description,
		FileURL:     a.FileURL,
		FileType:    model.ParseFileType(a.FileType),
		FileSize:    a.FileSize,
		Order:       a.Order,
		Locale:      model.Locale(a.Locale),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		PublishedAt: a.PublishedAt,
	}
	if r.FileURL == "" {
		r.FileURL = a.File.url()
	}
	if a.Module != nil && a.Module.Data != nil {
		r.Module = &model.ModuleRef{ID: a.Module.Data.ID, Title: a.Module.Data.Attributes.Title, Slug: a.Module.Data.Attributes.Slug}
	}
	return r
}

func (e *testimonialEntity) toModel() model.Testimonial {
	a := e.Attributes
	return model.Testimonial{
		ID:       e.ID,
		Name:     a.Name,
		Quote:    a.Quote,
		Role:     a.Role,
		PhotoURL: a.Photo.url(),
		Order:    a.Order,
		Locale:   model.Locale(a.Locale),
	}
}

func (e *settingsEntity) toModel() model.Settings {
	a := e.Attributes
	return model.Settings{
		SiteTitle:         a.SiteTitle,
		SiteTitleAr:       a.SiteTitleAr,
		HeroHeadline:      a.HeroHeadline,
		HeroHeadlineAr:    a.HeroHeadlineAr,
		HeroDescription:   a.HeroDescription,
		HeroDescriptionAr: a.HeroDescriptionAr,
		HeroVideoURL:      a.HeroVideoURL,
		FooterText:        a.FooterText,
		FooterTextAr:      a.FooterTextAr,
		SocialLinks:       a.SocialLinks,
		Locale:            model.Locale(a.Locale),
	}
}
