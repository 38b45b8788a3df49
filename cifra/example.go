package cifra

// Vector is a hex-encoded AES-CBC sample.
type Vector struct {
	KeyHex        string
	IVHex         string
	CiphertextHex string
}

// Example is the reference CBC sample offered by the interactive session.
var Example = Vector{
	KeyHex:        "240B31B44A27BEC5062B3A74C63271A4",
	IVHex:         "C4AB0DF3D808D72AAADBC68206483B18",
	CiphertextHex: "EF794476D605765572683CE849FBD4555CE8EC1382019662E277F31B8035E285787C1DA9D2CC5B3441F5CB900C41BA70902A932209C3966B83FB4387ABBC95E0",
}
