package redirect

type Input struct {
	ID string `path:"id" example:"3Uy8tqfVdP2" doc:"ID dynamic QR-кода"`
}

type Output struct {
	Status   int
	Location string `header:"Location"`
}
