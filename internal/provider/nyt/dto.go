package nyt

// listResponse is the envelope of a current-list request.
type listResponse struct {
	Status  string      `json:"status"`
	Results listResults `json:"results"`
}

type listResults struct {
	ListName string `json:"list_name"`
	Books    []Book `json:"books"`
}

// Book is one raw ranked entry of a bestseller list.
type Book struct {
	Rank          int    `json:"rank"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	WeeksOnList   int    `json:"weeks_on_list"`
	PrimaryISBN13 string `json:"primary_isbn13"`
}
