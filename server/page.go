package server

import (
	"html/template"
	"log"
	"net/http"

	"github.com/Conceptual-Machines/moodtunes-agents-go/recommend"
)

type indexData struct {
	DefaultLimit   int
	SpotifyEnabled bool
	LoggedIn       bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := indexData{
		DefaultLimit:   recommend.DefaultTrackLimit,
		SpotifyEnabled: s.auth != nil,
		LoggedIn:       s.sessions.token(userID(r)) != nil,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		log.Printf("⚠️ Rendering index page: %v", err)
	}
}

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// indexHTML is the whole demo UI. It talks to the JSON API with fetch and
// renders results client-side.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>MoodTunes</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; max-width: 880px; margin: 2rem auto; padding: 0 1rem; color: #1d2430; }
  h1 { font-size: 1.6rem; }
  fieldset { border: 1px solid #ccd3dd; border-radius: 8px; margin-bottom: 1rem; }
  legend { font-weight: 600; padding: 0 0.4rem; }
  input[type=text] { width: 60%; padding: 0.45rem; border: 1px solid #aab3c0; border-radius: 6px; }
  select { padding: 0.4rem; }
  button { padding: 0.45rem 1rem; border: 0; border-radius: 6px; background: #2457d6; color: #fff; cursor: pointer; }
  button:hover { background: #1b44ab; }
  table { width: 100%; border-collapse: collapse; margin-top: 1rem; }
  th, td { text-align: left; padding: 0.4rem 0.6rem; border-bottom: 1px solid #e3e8ef; }
  #banner { display: none; background: #fff3cd; border: 1px solid #e0c368; border-radius: 6px; padding: 0.6rem 0.8rem; margin-top: 1rem; }
  #error { display: none; background: #fbe2e2; border: 1px solid #d98c8c; border-radius: 6px; padding: 0.6rem 0.8rem; margin-top: 1rem; }
  .muted { color: #66707e; font-size: 0.9rem; }
  li { margin: 0.2rem 0; }
</style>
</head>
<body>
<h1>🎵 MoodTunes</h1>
<p class="muted">Tell it how you feel, or where you are, and it finds the soundtrack.</p>

<fieldset>
  <legend>By mood</legend>
  <input type="text" id="mood-text" placeholder="I feel amazing and joyful today">
  <button id="mood-go">Find tracks</button>
</fieldset>

<fieldset>
  <legend>By weather</legend>
  <input type="text" id="weather-location" placeholder="Oslo">
  <button id="weather-go">Find tracks</button>
</fieldset>

<label>Tracks:
  <select id="limit">
    <option value="10">10</option>
    <option value="20">20</option>
    <option value="30">30</option>
  </select>
</label>

<div id="error"></div>
<div id="banner"></div>
<p id="status" class="muted"></p>

<table id="results" style="display: none">
  <thead><tr><th>#</th><th>Track</th><th>Artist</th><th>Album</th><th></th></tr></thead>
  <tbody></tbody>
</table>

{{if .SpotifyEnabled}}
<fieldset id="playlist-box" style="display: none">
  <legend>Save as playlist</legend>
  {{if .LoggedIn}}
  <input type="text" id="playlist-name" placeholder="Playlist name (optional)">
  <button id="playlist-go">Create on Spotify</button>
  <span id="playlist-result" class="muted"></span>
  {{else}}
  <a href="/auth/login">Log in with Spotify</a> to save these tracks as a playlist.
  {{end}}
</fieldset>
{{end}}

<h2>Recent history</h2>
<ul id="history"><li class="muted">Nothing yet.</li></ul>

<script>
var lastTracks = [];
var lastEmotion = "";

function el(id) { return document.getElementById(id); }

function showError(message) {
  el("error").textContent = message;
  el("error").style.display = message ? "block" : "none";
}

function post(path, body, done) {
  showError("");
  el("status").textContent = "Working...";
  fetch(path, {
    method: "POST",
    headers: { "Content-Type": "application/json" },
    body: JSON.stringify(body)
  }).then(function (res) {
    return res.json().then(function (data) { done(res.ok, data); });
  }).catch(function (err) {
    el("status").textContent = "";
    showError(String(err));
  });
}

function renderTracks(label, tracks, degraded, reason) {
  lastTracks = tracks || [];
  el("status").textContent = label;
  var banner = el("banner");
  if (degraded) {
    banner.textContent = "⚠ Showing curated fallback tracks" + (reason ? " (" + reason + ")" : "");
    banner.style.display = "block";
  } else {
    banner.style.display = "none";
  }
  var tbody = el("results").querySelector("tbody");
  tbody.innerHTML = "";
  lastTracks.forEach(function (track, i) {
    var row = document.createElement("tr");
    [String(i + 1), track.name, track.artist, track.album || ""].forEach(function (value) {
      var cell = document.createElement("td");
      cell.textContent = value;
      row.appendChild(cell);
    });
    var linkCell = document.createElement("td");
    if (track.external_url) {
      var anchor = document.createElement("a");
      anchor.href = track.external_url;
      anchor.target = "_blank";
      anchor.rel = "noopener";
      anchor.textContent = "Open";
      linkCell.appendChild(anchor);
    }
    row.appendChild(linkCell);
    tbody.appendChild(row);
  });
  el("results").style.display = lastTracks.length ? "table" : "none";
  var playlistBox = el("playlist-box");
  if (playlistBox) { playlistBox.style.display = lastTracks.length ? "block" : "none"; }
  loadHistory();
}

function submitMood() {
  var text = el("mood-text").value;
  post("/api/mood", { text: text, limit: parseInt(el("limit").value, 10) }, function (ok, data) {
    if (!ok) { el("status").textContent = ""; showError(data.error || "request failed"); return; }
    lastEmotion = data.emotion;
    renderTracks("Mood: " + data.emotion, data.tracks, data.degraded, data.reason);
  });
}

function submitWeather() {
  var location = el("weather-location").value;
  post("/api/weather", { location: location, limit: parseInt(el("limit").value, 10) }, function (ok, data) {
    if (!ok) { el("status").textContent = ""; showError(data.error || "request failed"); return; }
    lastEmotion = data.emotion;
    renderTracks(data.location + ": " + data.condition + " → " + data.emotion, data.tracks, data.degraded, data.reason);
  });
}

function createPlaylist() {
  var ids = lastTracks.map(function (track) { return track.id; });
  post("/api/playlist", {
    name: el("playlist-name").value,
    emotion: lastEmotion,
    track_ids: ids
  }, function (ok, data) {
    if (!ok) { showError(data.error || "playlist creation failed"); return; }
    el("status").textContent = "";
    el("playlist-result").innerHTML = 'Created <a href="' + data.url + '" target="_blank" rel="noopener">' +
      data.name + "</a> with " + data.tracks_count + " tracks.";
  });
}

function loadHistory() {
  fetch("/api/history").then(function (res) { return res.json(); }).then(function (rows) {
    var list = el("history");
    list.innerHTML = "";
    if (!rows || !rows.length) {
      list.innerHTML = '<li class="muted">Nothing yet.</li>';
      return;
    }
    rows.forEach(function (row) {
      var item = document.createElement("li");
      var text = "[" + row.kind + "] " + row.input;
      if (row.emotion) { text += " → " + row.emotion; }
      if (row.track_count) { text += " (" + row.track_count + " tracks)"; }
      item.textContent = text;
      if (row.playlist_url) {
        item.innerHTML += ' <a href="' + row.playlist_url + '" target="_blank" rel="noopener">open</a>';
      }
      list.appendChild(item);
    });
  });
}

document.addEventListener("DOMContentLoaded", function () {
  el("limit").value = "{{.DefaultLimit}}";
  el("mood-go").addEventListener("click", submitMood);
  el("weather-go").addEventListener("click", submitWeather);
  var playlistGo = el("playlist-go");
  if (playlistGo) { playlistGo.addEventListener("click", createPlaylist); }
  loadHistory();
});
</script>
</body>
</html>
`
