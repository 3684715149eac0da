package handler

import "strings"

// The gateway and expiry pages are static HTML with two substitution
// points, so plain string replacement beats pulling in a template engine.

const passwordGatewayPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>ZipLink Security Check</title>
    <style>
        @import url('https://fonts.googleapis.com/css2?family=Bungee+Inline&family=Poppins:wght@400;700&display=swap');
        body {
            font-family: 'Poppins', sans-serif;
            background: linear-gradient(135deg, #bb86fc, #90caf9);
            display: flex;
            justify-content: center;
            align-items: center;
            min-height: 100vh;
            margin: 0;
            color: #e0e0e0;
        }
        .container {
            background: rgba(30, 30, 30, 0.9);
            backdrop-filter: blur(10px);
            border-radius: 15px;
            padding: 40px;
            box-shadow: 0 10px 30px rgba(0, 0, 0, 0.5);
            text-align: center;
            max-width: 450px;
            width: 90%;
        }
        h2 {
            font-family: 'Bungee Inline', cursive;
            color: #ffbcfe;
            font-size: 1.5em;
            margin-bottom: 20px;
            text-shadow: 0 0 5px rgba(255, 172, 251, 0.4);
        }
        input {
            padding: 12px 15px;
            border-radius: 8px;
            border: 1px solid #6200ee;
            background-color: #2a2a2a;
            color: #f0f0f0;
            width: calc(100% - 30px);
            margin-bottom: 20px;
            box-sizing: border-box;
        }
        button {
            padding: 12px 20px;
            border: none;
            border-radius: 8px;
            background: linear-gradient(45deg, #03dac6, #bb86fc);
            color: #121212;
            font-weight: bold;
            cursor: pointer;
            width: 100%;
            transition: transform 0.2s, box-shadow 0.2s;
        }
        button:hover {
            transform: translateY(-1px);
            box-shadow: 0 4px 10px rgba(0, 0, 0, 0.4);
        }
        .message {
            margin-top: 20px;
            color: #cf6679;
            font-weight: 600;
        }
    </style>
</head>
<body>
    <div class="container">
        <h2>ZipLink Protected Access</h2>
        <p>The alias /<span id="short-code-display">{short_code}</span> requires a password.</p>
        <form id="password-form">
            <input type="password" id="password" placeholder="Enter Password" required>
            <button type="submit" id="submit-button">Unlock Link</button>
        </form>
        <div id="message" class="message"></div>
    </div>

    <script>
        const shortCode = document.getElementById('short-code-display').textContent;
        const form = document.getElementById('password-form');
        const passwordInput = document.getElementById('password');
        const messageDiv = document.getElementById('message');
        const submitButton = document.getElementById('submit-button');
        const API_BASE_URL = "{base_url}";

        form.addEventListener('submit', async function(e) {
            e.preventDefault();
            const password = passwordInput.value;
            messageDiv.textContent = '';
            submitButton.disabled = true;
            submitButton.textContent = 'Verifying...';

            try {
                const response = await fetch(API_BASE_URL + '/verify_password', {
                    method: 'POST',
                    headers: { 'Content-Type': 'application/json' },
                    body: JSON.stringify({ shortCode, password })
                });
                const data = await response.json();
                if (response.ok && data.success) {
                    window.location.replace(data.longUrl);
                } else {
                    messageDiv.textContent = data.error || 'Verification failed.';
                    passwordInput.value = '';
                }
            } catch (error) {
                messageDiv.textContent = 'Network error. Please try again.';
            } finally {
                submitButton.disabled = false;
                submitButton.textContent = 'Unlock Link';
            }
        });
    </script>
</body>
</html>
`

const expiredPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Link Expired</title>
    <style>
        @import url('https://fonts.googleapis.com/css2?family=Bungee+Inline&family=Poppins:wght@400;700&display=swap');
        body { font-family: 'Poppins', sans-serif; background: #121212; color: #e0e0e0; text-align: center; padding-top: 50px; }
        h1 { font-family: 'Bungee Inline', cursive; color: #cf6679; }
    </style>
</head>
<body>
    <h1>Link Has Expired</h1>
    <p>Sorry, the link you are trying to access is no longer active.</p>
</body>
</html>
`

func renderPasswordGateway(shortCode, baseURL string) string {
	page := strings.ReplaceAll(passwordGatewayPage, "{short_code}", shortCode)
	return strings.ReplaceAll(page, "{base_url}", baseURL)
}

func renderExpiredPage() string {
	return expiredPage
}
