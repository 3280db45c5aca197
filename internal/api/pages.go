package api

import (
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/nisha-chat/nisha/internal/database"
	"github.com/nisha-chat/nisha/internal/stats"
	"github.com/nisha-chat/nisha/internal/weather"
)

func NewTemplateCache(dir string) (map[string]*template.Template, error) {
	tmplCache := make(map[string]*template.Template)

	pages, err := filepath.Glob(filepath.Join(dir, "pages", "*.tmpl"))
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := filepath.Base(page)
		patterns := []string{
			filepath.Join(dir, "base.html.tmpl"),
			page,
		}

		ts, err := template.New(name).ParseFiles(patterns...)
		if err != nil {
			return nil, err
		}

		tmplCache[name] = ts
	}

	return tmplCache, nil
}

func (s *NishaApp) render(w http.ResponseWriter, tmplName string, data any) {
	tmpl, ok := s.tc[tmplName]
	if !ok {
		s.log.Printf("template %q not in cache", tmplName)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.log.Printf("render %q: %v", tmplName, err)
	}
}

// sessionUsername resolves the caller's display name, falling back to
// the anonymous label for unauthenticated visitors.
func (s *NishaApp) sessionUsername(r *http.Request) string {
	userId, ok := UserId(r.Context())
	if !ok {
		return anonymousUsername
	}

	account, err := s.db.GetAccountById(userId)
	if err != nil {
		return anonymousUsername
	}

	return account.Username
}

func (s *NishaApp) index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/home/", http.StatusFound)
}

type homePageData struct {
	City    string
	Weather weather.Report
}

func (s *NishaApp) home(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		city = s.defaultCity
	}

	report := s.weather.Current(r.Context(), city)
	if report.Note != "" {
		s.stats.Incr(stats.WeatherFallbacks)
	}

	s.render(w, "home.html.tmpl", homePageData{City: city, Weather: report})
}

func (s *NishaApp) about(w http.ResponseWriter, _ *http.Request) {
	s.render(w, "about.html.tmpl", nil)
}

func (s *NishaApp) features(w http.ResponseWriter, _ *http.Request) {
	s.render(w, "features.html.tmpl", nil)
}

type loginPageData struct {
	Error string
}

func (s *NishaApp) loginPage(w http.ResponseWriter, r *http.Request) {
	// Already authenticated visitors go straight to the chat.
	if _, ok := s.sessionUserId(r); ok {
		http.Redirect(w, r, "/chat/whatsapp/", http.StatusFound)
		return
	}

	s.render(w, "login.html.tmpl", loginPageData{})
}

func (s *NishaApp) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, "login.html.tmpl", loginPageData{Error: err.Error()})
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	account, err := s.db.GetAccountByUsername(username)
	if err != nil || !verifyPassword(account.PasswordHash, password) {
		s.render(w, "login.html.tmpl", loginPageData{
			Error: "Please enter a correct username and password.",
		})
		return
	}

	if err := s.beginSession(w, account.Id); err != nil {
		s.log.Println("begin session:", err)
		s.render(w, "login.html.tmpl", loginPageData{Error: "Unable to sign in, try again."})
		return
	}

	if err := s.db.UpdatePresence(account.Id, true); err != nil {
		s.log.Println("update presence:", err)
	}

	http.Redirect(w, r, "/chat/whatsapp/", http.StatusFound)
}

func (s *NishaApp) logout(w http.ResponseWriter, r *http.Request) {
	if userId, ok := s.sessionUserId(r); ok {
		if err := s.db.UpdatePresence(userId, false); err != nil {
			s.log.Println("update presence:", err)
		}
	}

	s.endSession(w)
	http.Redirect(w, r, "/login/", http.StatusFound)
}

func (s *NishaApp) signupPage(w http.ResponseWriter, _ *http.Request) {
	s.render(w, "signup.html.tmpl", nil)
}

type legacyChatPageData struct {
	RoomName string
	Username string
	Messages []database.Message
}

// legacyChat serves the original chat page. It renders every stored
// message chronologically, regardless of room.
func (s *NishaApp) legacyChat(w http.ResponseWriter, r *http.Request) {
	roomName := r.PathValue("room_name")
	if roomName == "" {
		roomName = "global"
	}

	messages, err := s.db.ListAllMessages()
	if err != nil {
		s.log.Println("list messages:", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	s.render(w, "chat.html.tmpl", legacyChatPageData{
		RoomName: roomName,
		Username: s.sessionUsername(r),
		Messages: messages,
	})
}

type whatsappPageData struct {
	Authenticated bool
	Username      string
	Profile       database.Profile
	Rooms         []database.Room
}

func (s *NishaApp) whatsapp(w http.ResponseWriter, r *http.Request) {
	data := whatsappPageData{}

	if userId, ok := UserId(r.Context()); ok {
		profile, err := s.db.GetOrCreateProfile(userId)
		if err != nil {
			s.log.Println("get or create profile:", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		rooms, err := s.db.ListRoomsForAccount(userId)
		if err != nil {
			s.log.Println("list rooms:", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		data.Authenticated = true
		data.Username = s.sessionUsername(r)
		data.Profile = profile
		data.Rooms = rooms
	}

	s.render(w, "whatsapp.html.tmpl", data)
}
