package api

// Category is one topic tag attached to a blog post.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BlogPost is one externally-authored post surfaced by the aggregation feed.
// Posts are value objects: the client never mutates them after decoding.
type BlogPost struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Link         string     `json:"link"`
	Thumbnail    string     `json:"thumbnail,omitempty"`
	TechBlog     string     `json:"techBlog"`
	TechBlogName string     `json:"techBlogName"`
	ViewCount    int64      `json:"viewCount"`
	LikeCount    int64      `json:"likeCount"`
	CreatedAt    string     `json:"createdAt"`
	Categories   []Category `json:"categories"`
}

// BlogPage is one page of feed results. Item order is server-determined
// and must be preserved when pages are appended client-side.
type BlogPage struct {
	Content []BlogPost `json:"content"`
	Last    bool       `json:"last"`
}

// TechSource is an external content provider (a company tech blog).
type TechSource struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
	Logo  string `json:"logo"`
	URL   string `json:"url"`
}

// Interview states reported by the backend.
const (
	InterviewProgress = "PROGRESS"
	InterviewDone     = "DONE"
	InterviewComplete = "COMPLETE"
)

// Answer states carried on submissions.
const (
	AnswerStateComplete = "COMPLETE"
	AnswerStatePass     = "PASS"
)

// CurrentQuestion points at the single question the user is actively
// answering. It is re-fetched after every accepted submission.
type CurrentQuestion struct {
	InterviewID             int64  `json:"interviewId"`
	InterviewQuestionID     int64  `json:"interviewQuestionId"`
	Question                string `json:"question"`
	Index                   int    `json:"index"`
	Size                    int    `json:"size"`
	RemainTailQuestionCount int    `json:"remainTailQuestionCount"`
	InterviewStatus         string `json:"interviewStatus"`
}

// Done reports whether the session has no questions left to answer.
func (q CurrentQuestion) Done() bool {
	return q.InterviewStatus == InterviewDone
}

// SubmitRequest is the body for a top-level answer submission.
type SubmitRequest struct {
	InterviewQuestionID int64  `json:"interviewQuestionId"`
	AnswerState         string `json:"answerState"`
	TimeToAnswer        int    `json:"timeToAnswer"`
	AnswerContent       string `json:"answerContent"`
}

// TailSubmitRequest is the body for a follow-up answer submission.
type TailSubmitRequest struct {
	InterviewQuestionID int64  `json:"interviewQuestionId"`
	TailQuestionID      int64  `json:"tailQuestionId"`
	AnswerState         string `json:"answerState"`
	TimeToAnswer        int    `json:"timeToAnswer"`
	AnswerContent       string `json:"answerContent"`
}

// SubmitResult is the grader's response to either submission form.
// A nil TailQuestionID means the conversation advances to the next
// top-level question.
type SubmitResult struct {
	TailQuestionID *int64 `json:"tailQuestionId"`
	Question       string `json:"question"`
}

// InterviewQuestion is one fixed, ordered question of a session.
type InterviewQuestion struct {
	InterviewQuestionID     int64  `json:"interviewQuestionId"`
	AnswerState             string `json:"answerState"`
	Question                string `json:"question"`
	RemainTailQuestionCount int    `json:"remainTailQuestionCount"`
}

// Interview is the session detail.
type Interview struct {
	InterviewID        int64               `json:"interviewId"`
	InterviewState     string              `json:"interviewState"`
	Question           string              `json:"question"`
	InterviewQuestions []InterviewQuestion `json:"interviewQuestions"`
}

// InterviewSummary is one row of the caller's interview list.
type InterviewSummary struct {
	InterviewID     int64  `json:"interviewId"`
	Title           string `json:"title"`
	InterviewStatus string `json:"interviewStatus"`
	QuestionCount   int    `json:"questionCount"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// PageInfo describes server-side pagination of the interview list.
type PageInfo struct {
	Size          int `json:"size"`
	Number        int `json:"number"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

// InterviewPage is one page of the caller's interviews.
type InterviewPage struct {
	Content []InterviewSummary `json:"content"`
	Page    PageInfo           `json:"page"`
}

// ResultQuestion is one graded question in a completed interview.
type ResultQuestion struct {
	InterviewQuestionID int64  `json:"interviewQuestionId"`
	Question            string `json:"question"`
	AnswerContent       string `json:"answerContent"`
	AIFeedback          string `json:"aiFeedback"`
	Score               int    `json:"score"`
}

// InterviewResult is the full graded result of a session.
type InterviewResult struct {
	InterviewID        int64            `json:"interviewId"`
	Title              string           `json:"title"`
	Score              int              `json:"score"`
	CreatedAt          string           `json:"createdAt"`
	InterviewQuestions []ResultQuestion `json:"interviewQuestions"`
}

// Member is the authenticated user's profile.
type Member struct {
	MemberID int64  `json:"memberId"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}
