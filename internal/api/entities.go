package api

import (
	"net/http"

	"waremind/internal/models"
	"waremind/internal/whatsapp"
)

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.contacts.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if contacts == nil {
		contacts = []*models.Contact{}
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	contact := &models.Contact{}
	if !readJSON(w, r, contact) {
		return
	}
	if contact.Name == "" || whatsapp.Digits(contact.PhoneNumber) == "" {
		writeError(w, http.StatusBadRequest, "name and phone_number are required")
		return
	}
	if err := s.contacts.Create(r.Context(), contact); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

func (s *Server) handleGetContact(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	contact, err := s.contacts.GetByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	contact := &models.Contact{}
	if !readJSON(w, r, contact) {
		return
	}
	contact.ContactID = id
	if contact.Name == "" || whatsapp.Digits(contact.PhoneNumber) == "" {
		writeError(w, http.StatusBadRequest, "name and phone_number are required")
		return
	}
	if err := s.contacts.Update(r.Context(), contact); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	deleted, err := s.contacts.Delete(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.templates.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if templates == nil {
		templates = []*models.Template{}
	}
	writeJSON(w, http.StatusOK, templates)
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	template := &models.Template{}
	if !readJSON(w, r, template) {
		return
	}
	if template.Title == "" || template.Content == "" {
		writeError(w, http.StatusBadRequest, "title and content are required")
		return
	}
	if err := s.templates.Create(r.Context(), template); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, template)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	template, err := s.templates.GetByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, template)
}

func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	template := &models.Template{}
	if !readJSON(w, r, template) {
		return
	}
	template.TemplateID = id
	if template.Title == "" || template.Content == "" {
		writeError(w, http.StatusBadRequest, "title and content are required")
		return
	}
	if err := s.templates.Update(r.Context(), template); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, template)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	deleted, err := s.templates.Delete(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := s.statuses.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if statuses == nil {
		statuses = []*models.Status{}
	}
	writeJSON(w, http.StatusOK, statuses)
}

func (s *Server) handleCreateStatus(w http.ResponseWriter, r *http.Request) {
	status := &models.Status{}
	if !readJSON(w, r, status) {
		return
	}
	if status.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	if err := s.statuses.Create(r.Context(), status); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, status)
}

func (s *Server) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	status, err := s.statuses.GetByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	status := &models.Status{}
	if !readJSON(w, r, status) {
		return
	}
	status.StatusID = id
	if status.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	if err := s.statuses.Update(r.Context(), status); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleDeleteStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	deleted, err := s.statuses.Delete(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListStickers(w http.ResponseWriter, r *http.Request) {
	stickers, err := s.stickers.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if stickers == nil {
		stickers = []*models.Sticker{}
	}
	writeJSON(w, http.StatusOK, stickers)
}

func (s *Server) handleCreateSticker(w http.ResponseWriter, r *http.Request) {
	sticker := &models.Sticker{}
	if !readJSON(w, r, sticker) {
		return
	}
	if sticker.Name == "" || sticker.URL == "" {
		writeError(w, http.StatusBadRequest, "name and url are required")
		return
	}
	if err := s.stickers.Create(r.Context(), sticker); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sticker)
}

func (s *Server) handleGetSticker(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	sticker, err := s.stickers.GetByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sticker)
}

func (s *Server) handleUpdateSticker(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	sticker := &models.Sticker{}
	if !readJSON(w, r, sticker) {
		return
	}
	sticker.StickerID = id
	if sticker.Name == "" || sticker.URL == "" {
		writeError(w, http.StatusBadRequest, "name and url are required")
		return
	}
	if err := s.stickers.Update(r.Context(), sticker); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sticker)
}

func (s *Server) handleDeleteSticker(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	deleted, err := s.stickers.Delete(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
