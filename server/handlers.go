package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sjzsdu/speak/config"
	"github.com/sjzsdu/speak/helper/logger"
	"github.com/sjzsdu/speak/project"
	"github.com/sjzsdu/speak/project/pack"
	"github.com/sjzsdu/speak/store"
	"github.com/sjzsdu/speak/voice"
)

const maxBody = 16 << 20

type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("write response", logger.Err(err))
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, envelope{"success": false, "message": err.Error()})
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// session 取请求用户的会话，失败时已写出响应
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*userSession, bool) {
	us, err := s.sessions.get(r.Context(), userOf(r))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrInvalidUser) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return nil, false
	}
	return us, true
}

func (s *Server) getFiles(w http.ResponseWriter, r *http.Request) {
	us, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "fileSystem": us.session.Snapshot()})
}

func (s *Server) postFiles(w http.ResponseWriter, r *http.Request) {
	us, ok := s.session(w, r)
	if !ok {
		return
	}
	var body struct {
		FileSystem *project.FileSystem `json:"fileSystem"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.FileSystem == nil {
		writeError(w, http.StatusBadRequest, errors.New("fileSystem is required"))
		return
	}
	us.session.Commit(body.FileSystem)
	writeJSON(w, http.StatusOK, envelope{
		"success":    true,
		"message":    "File system updated",
		"fileSystem": body.FileSystem,
	})
}

func (s *Server) resetFiles(w http.ResponseWriter, r *http.Request) {
	us, ok := s.session(w, r)
	if !ok {
		return
	}
	fs, err := us.session.Reset(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		"success":    true,
		"message":    "File system reset to default",
		"fileSystem": fs,
	})
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	us, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "settings": us.session.Settings()})
}

// putSettings 部分更新，未知键忽略
func (s *Server) putSettings(w http.ResponseWriter, r *http.Request) {
	us, ok := s.session(w, r)
	if !ok {
		return
	}
	var patch map[string]any
	if err := decode(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	merged, err := us.session.Settings().Merge(patch)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, config.ErrInvalidSetting) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	us.session.UpdateSettings(merged)
	writeJSON(w, http.StatusOK, envelope{
		"success":  true,
		"message":  "Settings saved successfully",
		"settings": merged,
	})
}

func (s *Server) resetSettings(w http.ResponseWriter, r *http.Request) {
	us, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		"success":  true,
		"message":  "Settings reset to defaults",
		"settings": us.session.ResetSettings(),
	})
}

// exportProject 返回带元数据的导出包，请求未给出快照时导出当前快照
func (s *Server) exportProject(w http.ResponseWriter, r *http.Request) {
	us, ok := s.session(w, r)
	if !ok {
		return
	}
	var body struct {
		FileSystem *project.FileSystem `json:"fileSystem"`
	}
	if r.ContentLength != 0 {
		if err := decode(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	fs := body.FileSystem
	if fs == nil {
		fs = us.session.Snapshot()
	}
	w.Header().Set("Content-Type", "application/json")
	if err := pack.ExportJSON(w, fs); err != nil {
		logger.Warn("export project", logger.Err(err))
	}
}

// importProject 接受导出包或裸快照，替换当前快照
func (s *Server) importProject(w http.ResponseWriter, r *http.Request) {
	us, ok := s.session(w, r)
	if !ok {
		return
	}
	fs, err := pack.ImportJSON(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	us.session.Commit(fs)
	writeJSON(w, http.StatusOK, envelope{
		"success":     true,
		"message":     "Project imported successfully",
		"fileSystem":  fs,
		"projectName": pack.ProjectName(fs),
	})
}

type commandRequest struct {
	Utterance string `json:"utterance"`
	Confirm   *bool  `json:"confirm,omitempty"`
}

type commandResponse struct {
	Success      bool                `json:"success"`
	Outcome      string              `json:"outcome"`
	Command      voice.Command       `json:"command"`
	Notification voice.Notification  `json:"notification"`
	Action       string              `json:"action,omitempty"`
	Error        string              `json:"error,omitempty"`
	FileSystem   *project.FileSystem `json:"fileSystem,omitempty"`
	Tab          *voice.Tab          `json:"activeTab,omitempty"`
	Typing       bool                `json:"typing"`
	Sidebar      bool                `json:"sidebar"`
}

// command 执行一条语音指令。上一条仍在执行时返回 409
func (s *Server) command(w http.ResponseWriter, r *http.Request) {
	us, ok := s.session(w, r)
	if !ok {
		return
	}
	var req commandRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ctx := r.Context()
	if req.Confirm != nil {
		ctx = withConfirm(ctx, *req.Confirm)
	}
	eff, err := us.interpreter.Handle(ctx, req.Utterance)
	if errors.Is(err, voice.ErrBusy) {
		if s.metrics != nil {
			s.metrics.Dropped()
		}
		writeError(w, http.StatusConflict, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	resp := commandResponse{
		Success:      eff.OK(),
		Outcome:      eff.Outcome(),
		Command:      eff.Command,
		Notification: eff.Notification,
		Action:       eff.Action,
		FileSystem:   eff.Snapshot,
		Typing:       us.session.Typing(),
		Sidebar:      us.session.SidebarVisible(),
	}
	if eff.Err != nil {
		resp.Error = eff.Err.Error()
	}
	if tab, ok := us.session.Active(); ok {
		resp.Tab = &tab
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Warn("write response", logger.Err(err))
	}
}

// commands 可用指令示例
func (s *Server) commands(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, envelope{"success": true, "groups": voice.HelpGroups()})
}
