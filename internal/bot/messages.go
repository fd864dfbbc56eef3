package bot

// User-visible texts. Failures stay short and generic; detail is logged.
const (
	msgRegisterPrompt  = "Please provide your pseudonym in this field."
	msgRegisterOK      = "User registered successfully"
	msgRegisterFailed  = "Failed to register user"
	msgNameTooLong     = "Pseudonym must be between 1 and 20 characters."
	msgChooseCategory  = "Choose Category"
	msgCategorySet     = "Category is set"
	msgChooseOption    = "Choose an option"
	msgPickAnOption    = "Please choose one of the proposed answers."
	msgCorrect         = "Correct!"
	msgIncorrect       = "Incorrect!"
	msgNoExplanation   = "Explanation unavailable right now."
	msgLoadFailed      = "Failed to load categories"
	msgNoQuestions     = "No questions available for this category."
	msgInvalidCategory = "Invalid category"
	msgUnknownRequest  = "Sorry, I don't understand that request."
	msgGenericFailure  = "Something went wrong, please try again later."
)
