package common

type Response struct {
	StatusCode int
	Headers    map[string]interface{}
	Body       []byte
}

func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
