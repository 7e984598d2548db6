package handlers

import (
	"encoding/json"
	"goalTracker/internal/handlers/dto"
	"goalTracker/internal/logger"
	"goalTracker/internal/models/goal"
	"goalTracker/internal/service"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GoalHandler struct {
	GoalService GoalService
}

func NewGoalHandler(goalService GoalService) GoalHandler {
	return GoalHandler{
		GoalService: goalService,
	}
}

func parseGoalID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		logger.Warn("HTTP: Не удалось получить id",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "не удалось получить id: "+err.Error())
		return uuid.Nil, false
	}

	if id == uuid.Nil {
		logger.Warn("HTTP: Неверное значение id",
			zap.String("error", "nil id"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "id не может быть пустым")
		return uuid.Nil, false
	}

	return id, true
}

func (h *GoalHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := h.GoalService.HealthCheck(r.Context()); err != nil {
		responseWithError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	healthCheck(w)
}

func (h *GoalHandler) PostGoal(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: Ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	if request.Title == "" {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "title"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "название не может быть пустым")
		return
	}

	input := service.CreateGoalInput{
		Title:       request.Title,
		Description: request.Description,
		Kind:        goal.Kind(request.Type),
		WeekNumber:  request.WeekNumber,
		Year:        request.Year,
	}

	if request.Date != nil {
		date, err := time.Parse(dto.DateLayout, *request.Date)
		if err != nil {
			logger.Warn("HTTP: Ошибка валидации",
				zap.String("field", "date"),
				zap.String("error", "wrong_format"),
				zap.String("client_ip", r.RemoteAddr))

			responseWithError(w, http.StatusBadRequest, "дата должна быть в формате YYYY-MM-DD")
			return
		}
		input.Date = &date
	}

	if request.Month != nil {
		month := time.Month(*request.Month)
		input.Month = &month
	}

	logger.Info("HTTP: Вызов сервиса создания цели")

	created, err := h.GoalService.CreateGoal(r.Context(), input)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "create_goal"),
			zap.String("client_ip", r.RemoteAddr),
			zap.Duration("ms", time.Since(start)))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Цель создана",
		zap.String("goal_id", created.UUID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithBody(w, http.StatusCreated, dto.FromGoal(created))
}

func (h *GoalHandler) GetGoalByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseGoalID(w, r)
	if !ok {
		return
	}

	logger.Info("HTTP: Вызов сервиса для получения цели")

	g, err := h.GoalService.GetGoalByID(r.Context(), id)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "get_goal"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Цель получена",
		zap.String("goal_id", g.UUID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, dto.FromGoal(g))
}

// UpdateGoalStatus — прямая установка статуса (PATCH /goals/{id}/status).
func (h *GoalHandler) UpdateGoalStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseGoalID(w, r)
	if !ok {
		return
	}

	var request dto.UpdateStatusRequest

	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: Ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверно переданы параметры обновления: "+err.Error())
		return
	}

	logger.Info("HTTP: Вызов сервиса обновления статуса")

	g, err := h.GoalService.UpdateGoalStatus(r.Context(), id, goal.Status(request.Status))
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "update_goal_status"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Статус цели обновлён",
		zap.String("goal_id", g.UUID.String()),
		zap.String("status", string(g.Status)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, dto.FromGoal(g))
}

// ToggleGoal — чекбокс (POST /goals/{id}/toggle): checked=true завершает,
// checked=false возвращает прежний незавершённый статус.
func (h *GoalHandler) ToggleGoal(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseGoalID(w, r)
	if !ok {
		return
	}

	var request dto.ToggleRequest

	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: Ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	logger.Info("HTTP: Вызов сервиса переключения цели")

	g, err := h.GoalService.ToggleGoal(r.Context(), id, request.Checked)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "toggle_goal"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Цель переключена",
		zap.String("goal_id", g.UUID.String()),
		zap.String("status", string(g.Status)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, dto.FromGoal(g))
}

func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseGoalID(w, r)
	if !ok {
		return
	}

	logger.Info("HTTP: Обращение к сервису для удаления цели")

	if err := h.GoalService.DeleteGoal(r.Context(), id); err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "delete_goal"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Цель удалена",
		zap.String("goal_id", id.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}

func (h *GoalHandler) viewDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	date, err := parseDateParam(r)
	if err != nil {
		logger.Warn("HTTP: Неверное значение параметра",
			zap.String("query", "date"),
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "дата должна быть в формате YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

// GetDayView — дневные цели даты плюс недельные, накрывающие её.
func (h *GoalHandler) GetDayView(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	date, ok := h.viewDate(w, r)
	if !ok {
		return
	}

	view, err := h.GoalService.DayView(r.Context(), date)
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "day_view"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Представление дня получено",
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, dto.FromDayView(date, view))
}

func (h *GoalHandler) GetWeekView(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	date, ok := h.viewDate(w, r)
	if !ok {
		return
	}

	weekly, err := h.GoalService.WeekView(r.Context(), date)
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "week_view"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Представление недели получено",
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, dto.WeekViewResponse{
		Date:   date.Format(dto.DateLayout),
		Weekly: dto.FromGoalList(weekly),
	})
}

func (h *GoalHandler) GetMonthView(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	date, ok := h.viewDate(w, r)
	if !ok {
		return
	}

	monthly, err := h.GoalService.MonthView(r.Context(), date)
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "month_view"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Представление месяца получено",
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, dto.MonthViewResponse{
		Date:    date.Format(dto.DateLayout),
		Monthly: dto.FromGoalList(monthly),
	})
}

// GetOverview — сетка текущей недели: семь дат с их дневными целями,
// недельные и месячные цели периода отдельными списками.
func (h *GoalHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	date, ok := h.viewDate(w, r)
	if !ok {
		return
	}

	data, err := h.GoalService.Overview(r.Context(), date)
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "overview"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Обзор получен",
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, dto.FromOverview(data))
}
