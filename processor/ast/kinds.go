package ast

// Kind tags a node with its syntactic category.
//
// Shapes produced by front ends:
//
//	ClassDeclaration   decorators, id, superClass, body(ClassBody)
//	ClassProperty      decorators, key, typeAnnotation, value; Modifiers
//	MethodDefinition   decorators, key, params, returnType, body; kind attr
//	Parameter          name attr, typeAnnotation, value (default)
//	VariableDeclarator id, typeAnnotation, init
//	TemplateLiteral    quasis (string Literals), expressions
//	MemberExpression   object, property; computed/optional attrs
//	TSAsExpression     expression, typeAnnotation (absent for `as const`)
//	TSTypeAssertion    expression, typeAnnotation
//	TSNonNullExpression expression
//
// Program and BlockStatement keep their statements as plain Children.
type Kind string

// Node kinds. Names follow ESTree / typescript-estree.
const (
	KindProgram Kind = "Program"

	// Declarations
	KindClassDeclaration         Kind = "ClassDeclaration"
	KindClassBody                Kind = "ClassBody"
	KindClassProperty            Kind = "ClassProperty"
	KindMethodDefinition         Kind = "MethodDefinition"
	KindDecorator                Kind = "Decorator"
	KindFunctionDeclaration      Kind = "FunctionDeclaration"
	KindVariableDeclaration      Kind = "VariableDeclaration"
	KindVariableDeclarator       Kind = "VariableDeclarator"
	KindTSEnumDeclaration        Kind = "TSEnumDeclaration"
	KindTSEnumMember             Kind = "TSEnumMember"
	KindTSInterfaceDeclaration   Kind = "TSInterfaceDeclaration"
	KindTSTypeAliasDeclaration   Kind = "TSTypeAliasDeclaration"
	KindImportDeclaration        Kind = "ImportDeclaration"
	KindExportNamedDeclaration   Kind = "ExportNamedDeclaration"
	KindExportDefaultDeclaration Kind = "ExportDefaultDeclaration"
	KindParameter                Kind = "Parameter"

	// Statements
	KindBlockStatement      Kind = "BlockStatement"
	KindExpressionStatement Kind = "ExpressionStatement"
	KindIfStatement         Kind = "IfStatement"
	KindWhileStatement      Kind = "WhileStatement"
	KindDoWhileStatement    Kind = "DoWhileStatement"
	KindForStatement        Kind = "ForStatement"
	KindReturnStatement     Kind = "ReturnStatement"

	// Expressions
	KindIdentifier              Kind = "Identifier"
	KindLiteral                 Kind = "Literal"
	KindTemplateLiteral         Kind = "TemplateLiteral"
	KindObjectExpression        Kind = "ObjectExpression"
	KindProperty                Kind = "Property"
	KindArrayExpression         Kind = "ArrayExpression"
	KindMemberExpression        Kind = "MemberExpression"
	KindThisExpression          Kind = "ThisExpression"
	KindCallExpression          Kind = "CallExpression"
	KindNewExpression           Kind = "NewExpression"
	KindUnaryExpression         Kind = "UnaryExpression"
	KindBinaryExpression        Kind = "BinaryExpression"
	KindLogicalExpression       Kind = "LogicalExpression"
	KindConditionalExpression   Kind = "ConditionalExpression"
	KindAssignmentExpression    Kind = "AssignmentExpression"
	KindAwaitExpression         Kind = "AwaitExpression"
	KindArrowFunctionExpression Kind = "ArrowFunctionExpression"
	KindFunctionExpression      Kind = "FunctionExpression"
	KindJSXElement              Kind = "JSXElement"

	// Type casts. Parentheses and `satisfies` leave the type unchanged and
	// are unwrapped by front ends; these are not.
	KindTSAsExpression      Kind = "TSAsExpression"
	KindTSTypeAssertion     Kind = "TSTypeAssertion"
	KindTSNonNullExpression Kind = "TSNonNullExpression"

	// Type annotations. Declarations point at the type node directly through
	// the "typeAnnotation" and "returnType" fields.
	KindTSTypeReference Kind = "TSTypeReference"
	KindTSKeyword       Kind = "TSKeyword"
	KindTSUnionType     Kind = "TSUnionType"
	KindTSLiteralType   Kind = "TSLiteralType"
	KindTSArrayType     Kind = "TSArrayType"

	// KindUnknown wraps front-end nodes with no ESTree counterpart. The
	// original node type is kept in the "native" attribute.
	KindUnknown Kind = "Unknown"
)

// Attribute keys.
const (
	AttrName      = "name"      // identifier, keyword and reference names
	AttrOperator  = "operator"  // unary, binary, logical, assignment
	AttrKind      = "kind"      // method|constructor|get|set, const|let|var
	AttrValue     = "value"     // literal value, unquoted
	AttrValueType = "valueType" // string|number|boolean|null|regex
	AttrRaw       = "raw"       // literal source text
	AttrConst     = "const"     // "true" on const enums
	AttrOptional  = "optional"  // "true" on `x?:` members, parameters and `?.`
	AttrComputed  = "computed"  // "true" on `a[b]` and `{[k]: v}`
	AttrNative    = "native"    // front-end node type for KindUnknown
)

// Field and list names.
const (
	FieldID             = "id"
	FieldKey            = "key"
	FieldValue          = "value"
	FieldBody           = "body"
	FieldExpression     = "expression"
	FieldCallee         = "callee"
	FieldObject         = "object"
	FieldProperty       = "property"
	FieldArgument       = "argument"
	FieldLeft           = "left"
	FieldRight          = "right"
	FieldTest           = "test"
	FieldConsequent     = "consequent"
	FieldAlternate      = "alternate"
	FieldInit           = "init"
	FieldUpdate         = "update"
	FieldSource         = "source"
	FieldDeclaration    = "declaration"
	FieldTypeAnnotation = "typeAnnotation"
	FieldTypeName       = "typeName"
	FieldReturnType     = "returnType"
	FieldSuperClass     = "superClass"
	FieldElementType    = "elementType"

	ListArguments      = "arguments"
	ListParams         = "params"
	ListProperties     = "properties"
	ListElements       = "elements"
	ListDeclarations   = "declarations"
	ListMembers        = "members"
	ListTypes          = "types"
	ListTypeParameters = "typeParameters"
	ListQuasis         = "quasis"
	ListExpressions    = "expressions"
	ListSpecifiers     = "specifiers"
)

// Modifier keywords.
const (
	ModPublic    = "public"
	ModPrivate   = "private"
	ModProtected = "protected"
	ModReadonly  = "readonly"
	ModStatic    = "static"
	ModAsync     = "async"
	ModAbstract  = "abstract"
)
