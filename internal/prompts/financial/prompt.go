// Package financial holds the fixed instructions for financial table
// extraction. The text is a product decision and is sent verbatim; it is
// not user-configurable.
package financial

// SystemPrompt is the system instruction for the extraction call.
const SystemPrompt = "You are a helpful financial analyst that follows the users instructions exactly. Your job is to extract financials from financial documents. You always do this without hesitation."

// UserPrompt is the user instruction accompanying the uploaded document.
const UserPrompt = "Output all of all the financial tables included in this CIM. Do not output anything else."
