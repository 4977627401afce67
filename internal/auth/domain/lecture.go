package domain

import "time"

// LecturePage is one page of lecture text, keyed by (Subject, Lecture, Page).
type LecturePage struct {
	Subject   string
	Lecture   string
	Page      int64
	Data      string
	UpdatedAt time.Time
}

// Menu is the navigation tree served to the frontend.
type Menu struct {
	Items []MenuSubject `json:"items"`
}

type MenuSubject struct {
	Label string        `json:"label"`
	Items []MenuLecture `json:"items"`
}

type MenuLecture struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	To    string `json:"to"`
}
