package handlers

// ShortenRequest is the request body for creating a short URL.
type ShortenRequest struct {
	Body struct {
		LongURL string `doc:"The URL to shorten" example:"https://example.com/very/long/path" json:"long_url" required:"false"`
	}
}

// ShortenResponse is the response for a successfully created short URL.
type ShortenResponse struct {
	Location string `doc:"Path of the short URL" header:"Location"`
	Body     struct {
		ShortURL string `doc:"Path of the short URL, relative to the service origin" example:"/abc123" json:"short_url"`
	}
}

// RedirectRequest is the request for redirecting a short URL.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"abc123" path:"code"`
}

// RedirectResponse sends the client to the stored URL.
type RedirectResponse struct {
	Status   int
	Location string `doc:"The original URL" header:"Location"`
}
